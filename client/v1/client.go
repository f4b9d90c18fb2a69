package v1

type PontoClient struct {
	Transport  *Transport
	Attendance *AttendanceEndpoint
}

// NewPontoClient initializes the API client
func NewPontoClient(baseURL string, token string) *PontoClient {
	t := NewTransport(baseURL, token)
	return &PontoClient{
		Transport:  t,
		Attendance: &AttendanceEndpoint{transport: t},
	}
}
