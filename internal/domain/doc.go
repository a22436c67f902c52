// Package domain models historical earthquake catalog data and the pure
// derivations that turn a catalog into dashboard views.
//
// # Data Source
//
// The catalog is the USGS-derived "Significant Earthquakes, 1965-2016" table,
// one row per event with magnitude 5.5 or greater. It is read wholesale at the
// start of every run from a CSV or XLSX file. Columns used:
//
//	Date, Time, Latitude, Longitude, Type, Depth, Magnitude, Source
//
// # Catalog Conventions
//
// Date format (mixed in the source data):
//
//	"01/02/1965"                 MM/DD/YYYY, the common case; clock from the Time column
//	"1975-02-23T02:58:41.000Z"   ISO-8601 with milliseconds, a handful of rows
//	"2006-01-02"                 date-only ISO, accepted for hand-edited files
//
// Rows whose Date matches none of the layouts are dropped. Dropping is not an
// error; it is counted in [NormalizeReport] so data quality stays visible.
//
// Time format:
//
//	"HH:MM:SS" in UTC. Only consulted when Date carries no clock of its own.
//
// Numeric columns (Latitude, Longitude, Depth, Magnitude):
//
//	Parsed as float64. Unparseable values become NaN and propagate through the
//	derived arithmetic. No range validation is applied.
//
// Event types:
//
//	"Earthquake", "Nuclear Explosion", "Explosion", "Rock Burst". Compared
//	exactly; "Nuclear Explosion" drives the nuclear test site map.
//
// # Derived Fields
//
//	Decade:         floor(year/10)*10
//	Energy:         10^(1.5*magnitude), a relative seismic-moment proxy
//	Depth category: Shallow <70 km | Intermediate 70-300 km inclusive | Deep >300 km
//	Magnitude bin:  [5.5,6.0) [6.0,6.5) [6.5,7.0) [7.0,7.5) [7.5,8.0) [8.0,8.5) [8.5,9.5)
//
// # Views
//
// Every view function takes a [Table] and returns a fresh value; none mutate
// the table or depend on another view. Re-running them on the same table
// yields identical output.
package domain
