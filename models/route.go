package models

// Coordinate is a WGS84 point
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// RouteRequest is forwarded to the external routing API
type RouteRequest struct {
	Origin      Coordinate `json:"origin" validate:"required"`
	Destination Coordinate `json:"destination" validate:"required"`
	Mode        string     `json:"mode" validate:"omitempty,oneof=driving walking cycling"`
}
