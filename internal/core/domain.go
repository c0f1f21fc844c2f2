package core

import "fmt"

// Domain identifies one of the tracked record kinds. It is used as the
// routing key for sync messages and as the sheet name for backups.
type Domain string

const (
	DomainExpenses Domain = "expenses"
	DomainSleep    Domain = "sleep"
	DomainStudy    Domain = "study"
	DomainHabits   Domain = "habits"
)

// Domains returns all record domains in a fixed order.
func Domains() []Domain {
	return []Domain{DomainExpenses, DomainSleep, DomainStudy, DomainHabits}
}

// ParseDomain validates a domain string coming off the wire.
func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	switch d {
	case DomainExpenses, DomainSleep, DomainStudy, DomainHabits:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

func (d Domain) String() string {
	return string(d)
}
