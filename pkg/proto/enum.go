//go:generate stringer -type=ReportReason,HealthTest -output enum_string.go
package proto

// ReportReason explains why a monitored source transmitted a report.  Values
// must stay numerically aligned with pb.ReportReason.
type ReportReason int32

const (
	_ ReportReason = iota
	Start
	Periodic
	HealthAlarm
	Assessment
	Shutdown
)

// HealthTest identifies one of the SP 800-90B continuous health tests.
type HealthTest int32

const (
	_ HealthTest = iota
	RepetitionCount
	AdaptiveProportion
)
