package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lrnselfreliance/wardreport/wardreport/constants"
)

// Member is one roster entry from the LCR member list. Entries are not
// always formal members; non-member household residents appear here too.
//
// Two identifier namespaces exist: UUID is the roster's own record id, and
// LegacyCmisID is the cross-reference key shared with the calling and
// recommend collections. They are not interchangeable.
type Member struct {
	UUID                      string  `json:"uuid"`
	LegacyCmisID              int64   `json:"legacyCmisId"`
	HouseholdAnchorPersonUUID string  `json:"householdAnchorPersonUuid"`
	Age                       *int    `json:"age"`
	Sex                       *string `json:"sex"`
	IsMember                  bool    `json:"isMember"`
	PriesthoodOffice          *string `json:"priesthoodOffice"`
	IsSingleAdult             bool    `json:"isSingleAdult"`
	IsYoungSingleAdult        bool    `json:"isYoungSingleAdult"`
	Birth                     *Birth  `json:"birth"`
}

type Birth struct {
	Date BirthDate `json:"date"`
}

type BirthDate struct {
	Calc string `json:"calc"` // YYYY-MM-DD
}

// AgeYears returns the roster-reported age. Callers validate the roster
// before aggregating, so a nil Age never reaches the partition predicates.
func (m Member) AgeYears() int {
	if m.Age == nil {
		return 0
	}
	return *m.Age
}

func (m Member) IsMale() bool {
	return m.Sex != nil && *m.Sex == constants.SexMale
}

func (m Member) IsAdult() bool {
	return m.AgeYears() >= 18
}

// IsSingle reports whether the roster flags this member single, at any age.
func (m Member) IsSingle() bool {
	return m.IsSingleAdult || m.IsYoungSingleAdult
}

// YearAge computes the member's age from birth year alone, relative to ref.
// The roster's age field is authoritative for the report; this exists for
// callers that need an age as of an arbitrary reference date.
func (m Member) YearAge(ref time.Time) (int, error) {
	if m.Birth == nil || m.Birth.Date.Calc == "" {
		return 0, errors.Errorf("member %s has no birth date", m.UUID)
	}
	year, err := strconv.Atoi(strings.SplitN(m.Birth.Date.Calc, "-", 2)[0])
	if err != nil {
		return 0, errors.Wrapf(err, "member %s has a malformed birth date %q", m.UUID, m.Birth.Date.Calc)
	}
	return ref.Year() - year, nil
}

// Organization is one organizational group from the sub-orgs-with-callings
// payload. Callings arrive nested two levels deep.
type Organization struct {
	SubOrgID int64             `json:"subOrgId"`
	Name     string            `json:"name"`
	Children []SubOrganization `json:"children"`
}

type SubOrganization struct {
	SubOrgID int64     `json:"subOrgId"`
	Name     string    `json:"name"`
	Callings []Calling `json:"callings"`
}

// Calling is a single assignment. MemberID carries the legacy identifier
// shared with the roster's legacyCmisId, not the roster uuid.
type Calling struct {
	MemberID   int64  `json:"memberId"`
	Position   string `json:"position"`
	ActiveDate string `json:"activeDate"`
}

// RecommendStatus is one member's temple-recommend record, keyed by the
// same legacy identifier as callings.
type RecommendStatus struct {
	LegacyCmisID    int64   `json:"legacyCmisId"`
	RecommendStatus *string `json:"recommendStatus"`
	EndowmentDate   *string `json:"endowmentDate"`
}

// Endowed reports whether the record carries an endowment date.
func (r RecommendStatus) Endowed() bool {
	return r.EndowmentDate != nil && *r.EndowmentDate != ""
}

// DataBundle is the set of collections one report run consumes. It is the
// shape download-data writes to disk and the LCR client materializes.
// Ministering assignments ride along in the bundle but are not an
// aggregation input.
type DataBundle struct {
	MemberList      []Member          `json:"member_list"`
	Callings        []Organization    `json:"callings"`
	Ministering     json.RawMessage   `json:"ministering,omitempty"`
	RecommendStatus []RecommendStatus `json:"recommend_status"`
}
