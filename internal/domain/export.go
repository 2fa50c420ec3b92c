package domain

// TripExport is the self-contained JSON document produced by the trip export
// endpoint and accepted by import. Entity IDs inside the document are the
// exporting database's IDs; they serve only as aliases for re-linking
// segment anchors on import, where every entity receives a fresh ID.
type TripExport struct {
	// Version guards against future format changes. Currently always 1.
	Version int           `json:"version"`
	Trip    ExportTrip    `json:"trip"`
	Days    []ExportDay   `json:"days"`
	Images  []ExportImage `json:"images,omitempty"`
}

// ExportTrip carries the trip row. Dates are "2006-01-02" strings so the
// document is stable regardless of the exporting server's timezone handling.
type ExportTrip struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ExportDay nests everything attached to one calendar day.
type ExportDay struct {
	Date          string               `json:"date"`
	DayIndex      int                  `json:"day_index"`
	Accommodation *ExportAccommodation `json:"accommodation,omitempty"`
	Items         []ExportItem         `json:"items,omitempty"`
	Segments      []ExportSegment      `json:"segments,omitempty"`
}

// ExportAccommodation mirrors Accommodation minus IDs and timestamps.
// Alias is the exporting database's accommodation ID, referenced by segments.
type ExportAccommodation struct {
	Alias    string              `json:"alias"`
	Name     string              `json:"name"`
	Status   AccommodationStatus `json:"status"`
	Cost     *float64            `json:"cost,omitempty"`
	Link     string              `json:"link,omitempty"`
	CheckIn  *string             `json:"check_in,omitempty"`
	CheckOut *string             `json:"check_out,omitempty"`
	Location *Location           `json:"location,omitempty"`
}

// ExportItem mirrors DayPlanItem minus IDs and timestamps.
type ExportItem struct {
	Alias     string    `json:"alias"`
	Content   string    `json:"content"`
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`
	Location  *Location `json:"location,omitempty"`
	Link      string    `json:"link,omitempty"`
	Cost      *float64  `json:"cost,omitempty"`
}

// ExportSegment references its anchors by (type, alias). A from-anchor may
// alias the previous day's accommodation, mirroring the timeline rules.
type ExportSegment struct {
	From            ExportAnchor  `json:"from"`
	To              ExportAnchor  `json:"to"`
	Mode            TransportMode `json:"mode"`
	DurationMinutes int           `json:"duration_minutes"`
	DistanceMeters  *int          `json:"distance_meters,omitempty"`
	Link            string        `json:"link,omitempty"`
}

// ExportAnchor is an AnchorRef with the ID replaced by a document alias.
type ExportAnchor struct {
	Type  AnchorType `json:"type"`
	Alias string     `json:"alias"`
}

// ExportImage carries gallery metadata. The file key points at external
// storage and is copied verbatim; import does not duplicate stored bytes.
type ExportImage struct {
	FileKey   string `json:"file_key"`
	Alt       string `json:"alt,omitempty"`
	SortOrder int    `json:"sort_order"`
	Hero      bool   `json:"hero,omitempty"`
}
