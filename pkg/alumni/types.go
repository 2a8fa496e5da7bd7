// Package alumni generates synthetic alumni records and filters them for the
// directory view.
package alumni

// Answer is a yes/no survey response.
type Answer string

const (
	Yes Answer = "Yes"
	No  Answer = "No"
)

// Record is one synthetic alumnus shown in the directory. Records are
// created once and never modified.
type Record struct {
	Name             string `json:"name" yaml:"name"`
	Batch            string `json:"batch" yaml:"batch"`
	ProgramTrack     string `json:"program_track" yaml:"program_track"`
	Geography        string `json:"geography" yaml:"geography"`
	WorkStatus       string `json:"work_status" yaml:"work_status"`
	Mentoring        Answer `json:"mentoring" yaml:"mentoring"`
	PlacementSupport Answer `json:"placement_support" yaml:"placement_support"`
}

// Work status labels the generator assigns.
const (
	StatusIntrapreneur = "Intrapreneur"
	StatusNotWorking   = "Not working presently"
	StatusEntrepreneur = "Entrepreneur"
	StatusHigherStudy  = "Higher Studies"
	StatusFreelancer   = "Freelancer/Consultant"
)

// Badge classes for the directory table.
const (
	BadgeWorking      = "status-badge--working"
	BadgeNotWorking   = "status-badge--not-working"
	BadgeEntrepreneur = "status-badge--entrepreneur"
	BadgeStudies      = "status-badge--studies"
	BadgeYes          = "status-badge--yes"
	BadgeNo           = "status-badge--no"
)

// WorkStatusBadge returns the badge class for a work status, or "" for an
// unknown status.
func WorkStatusBadge(status string) string {
	switch status {
	case StatusIntrapreneur:
		return BadgeWorking
	case StatusNotWorking:
		return BadgeNotWorking
	case StatusEntrepreneur:
		return BadgeEntrepreneur
	case StatusHigherStudy, StatusFreelancer:
		return BadgeStudies
	default:
		return ""
	}
}

// AnswerBadge returns the badge class for a yes/no answer.
func AnswerBadge(a Answer) string {
	if a == Yes {
		return BadgeYes
	}
	return BadgeNo
}
