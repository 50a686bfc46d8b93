package ports

// GovernanceProfile carries agency-level presentation defaults. All fields
// are optional; zero values mean no override.
type GovernanceProfile struct {
	Organization     string
	ReportFooter     string
	ExtraAssessments []string
}

// ProfileSource exposes the active governance profile. Implementations may
// swap the profile at runtime, so callers take a fresh Current() per
// operation instead of holding on to one.
type ProfileSource interface {
	Current() GovernanceProfile
}
