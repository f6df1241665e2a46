package db

// SQL fragments shared by the observation queries.
const (
	// sqlObservationColumns lists the columns scanned by scanObservation, in order.
	sqlObservationColumns = "obs_date, season, weather, hour, daily_count, hourly_count"

	// sqlDateLayout is the storage format of obs_date.
	sqlDateLayout = "2006-01-02"

	// sqlTimestampLayout is the storage format of imported_at.
	sqlTimestampLayout = "2006-01-02 15:04:05"
)
