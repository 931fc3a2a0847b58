package domain

// Location is a (zone, ward, area) triple identifying where an issue was
// reported. Rows are append-only reference data created lazily on first use.
type Location struct {
	ID       int64
	Zone     string
	Ward     string
	AreaName string
}
