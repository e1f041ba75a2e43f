package models

import "encoding/json"

// CityCount is the number of postings sharing one exact location label.
type CityCount struct {
	City  string `json:"city"  yaml:"city"`
	Count int    `json:"count" yaml:"count"`
}

// HeatPoint is a weighted coordinate rendered as one heat blob.
type HeatPoint struct {
	Lat    float64
	Lng    float64
	Weight float64
}

// MarshalJSON encodes the point as [lat, lng, weight], the layout heat layers consume.
func (p HeatPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{p.Lat, p.Lng, p.Weight})
}

// UnmarshalJSON decodes a [lat, lng, weight] triple.
func (p *HeatPoint) UnmarshalJSON(data []byte) error {
	var triple [3]float64
	if err := json.Unmarshal(data, &triple); err != nil {
		return err
	}
	p.Lat, p.Lng, p.Weight = triple[0], triple[1], triple[2]
	return nil
}

// JobSummary holds the display strings of a single posting.
type JobSummary struct {
	Title    string `json:"title"    yaml:"title"`
	Company  string `json:"company"  yaml:"company"`
	Location string `json:"location" yaml:"location"`
	Salary   string `json:"salary"   yaml:"salary,omitempty"`
}

// Dashboard is every view-model derived from one loaded snapshot of jobs.
type Dashboard struct {
	Total      int          `json:"total"       yaml:"total"`
	Mapped     int          `json:"mapped"      yaml:"mapped"`
	TopCity    *CityCount   `json:"top_city"    yaml:"top_city"`
	Cities     []CityCount  `json:"cities"      yaml:"cities"`
	Chart      []CityCount  `json:"chart"       yaml:"chart"`
	HeatPoints []HeatPoint  `json:"heat_points" yaml:"-"`
	Latest     []JobSummary `json:"latest"      yaml:"latest"`
}
