package model

// WorkLocation defines one admissible circular geofence. Radius is in
// meters. Inactive locations never admit a clock event.
type WorkLocation struct {
	ID        string  `gorm:"primaryKey;column:id;size:64" json:"id"`
	Name      string  `gorm:"column:name;size:120;not null" json:"name"`
	Latitude  float64 `gorm:"column:latitude;not null" json:"latitude"`
	Longitude float64 `gorm:"column:longitude;not null" json:"longitude"`
	Radius    float64 `gorm:"column:radius;not null" json:"radius"`
	Active    bool    `gorm:"column:active;not null;default:true" json:"active"`
}

func (WorkLocation) TableName() string {
	return "work_locations"
}
