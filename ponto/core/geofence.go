package core

import (
	"math"

	"frigotec.com/frigotec/ponto/model"
)

const earthRadiusMeters = 6371000.0

// Position is a raw lat/lng fix captured at registration time.
type Position struct {
	Latitude  float64
	Longitude float64
}

// GlobalAccessZone is the synthetic zone returned for unrestricted
// admins. It never admits anyone through distance checks.
var GlobalAccessZone = model.WorkLocation{
	ID:     model.LocationGlobal,
	Name:   "Acesso Global",
	Active: true,
}

// HaversineMeters returns the great-circle distance between two
// coordinates in meters.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// MatchZone returns the first active zone whose radius contains the
// position, or nil. Zone priority on overlap is iteration order; the
// caller passes zones ordered by id.
//
// An unrestricted admin (globalBypass) matches unconditionally and
// receives the synthetic global zone. A nil position means the fix
// failed upstream; non-admins are outside every perimeter.
func MatchZone(pos *Position, zones []model.WorkLocation, globalBypass bool) *model.WorkLocation {
	if globalBypass {
		z := GlobalAccessZone
		return &z
	}
	if pos == nil {
		return nil
	}
	for i := range zones {
		z := &zones[i]
		if !z.Active {
			continue
		}
		if HaversineMeters(pos.Latitude, pos.Longitude, z.Latitude, z.Longitude) <= z.Radius {
			return z
		}
	}
	return nil
}
