package domain

import (
	"time"
)

// StatField names a counter column on the singleton stats record
type StatField string

const (
	FieldVideoViews     StatField = "video_views"
	FieldVideoDownloads StatField = "video_downloads"
	FieldAppDownloads   StatField = "app_downloads"
	FieldVisitsToday    StatField = "visits_today"
	FieldVisitsWeek     StatField = "visits_week"
	FieldVisitsMonth    StatField = "visits_month"
)

// AllStatFields lists every counter field on the stats record
var AllStatFields = []StatField{
	FieldVideoViews,
	FieldVideoDownloads,
	FieldAppDownloads,
	FieldVisitsToday,
	FieldVisitsWeek,
	FieldVisitsMonth,
}

// Valid reports whether f names a known counter column. Field names are
// interpolated into SQL, so anything else must be rejected up front.
func (f StatField) Valid() bool {
	switch f {
	case FieldVideoViews, FieldVideoDownloads, FieldAppDownloads,
		FieldVisitsToday, FieldVisitsWeek, FieldVisitsMonth:
		return true
	}
	return false
}

// Stats is the singleton counter aggregate. Exactly one row exists, keyed by
// a fixed ID, created lazily on first use.
type Stats struct {
	ID             int       `json:"id" db:"id"`
	VideoViews     int64     `json:"video_views" db:"video_views"`
	VideoDownloads int64     `json:"video_downloads" db:"video_downloads"`
	AppDownloads   int64     `json:"app_downloads" db:"app_downloads"`
	VisitsToday    int64     `json:"visits_today" db:"visits_today"`
	VisitsWeek     int64     `json:"visits_week" db:"visits_week"`
	VisitsMonth    int64     `json:"visits_month" db:"visits_month"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// StatsID is the well-known key of the singleton stats row
const StatsID = 1
