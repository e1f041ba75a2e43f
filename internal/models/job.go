package models

// JobPosting is a job posting as it is persisted in the record store.
// Pointer fields are nil when the stored document has no value for them.
type JobPosting struct {
	ID                string   // ID is the store-native identifier rendered as a string.
	Title             string   // Title is the job_title field.
	CompanyName       string   // CompanyName is the company_name field.
	Location          string   // Location is the free-text location label.
	Lat               *float64 // Lat is the latitude, nil when unknown.
	Lng               *float64 // Lng is the longitude, nil when unknown.
	SalaryString      string   // SalaryString is the free-text salary label, may be "NaN".
	Weight            *float64 // Weight is the job_weight field, nil when absent.
	GeocodingAttempts int      // GeocodingAttempts counts failed geocoding tries.
	GeocodingError    string   // GeocodingError holds the last geocoding failure message.
}

// TransportJob is the normalized shape returned by the jobs API.
type TransportJob struct {
	Title    string   `json:"title"    yaml:"title"`
	Company  string   `json:"company"  yaml:"company"`
	Location string   `json:"location" yaml:"location"`
	Lat      *float64 `json:"lat"      yaml:"lat"`
	Lng      *float64 `json:"lng"      yaml:"lng"`
	Salary   string   `json:"salary"   yaml:"salary"`
	Weight   float64  `json:"weight"   yaml:"weight"`
}
