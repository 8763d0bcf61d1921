// Package report turns the raw LCR collections into the fixed-shape
// statistical report. Aggregation is a pure computation over fully
// materialized inputs; it performs no I/O beyond surfacing data anomalies
// in the log.
package report

import (
	"math"
	"strconv"

	"github.com/lrnselfreliance/wardreport/log"
	"github.com/lrnselfreliance/wardreport/wardreport/constants"
	werrors "github.com/lrnselfreliance/wardreport/wardreport/errors"
	"github.com/lrnselfreliance/wardreport/wardreport/models"
	"github.com/lrnselfreliance/wardreport/wardreport/partition"
	"github.com/lrnselfreliance/wardreport/wardreport/utils"
)

// PriesthoodCounts is one six-bucket priesthood grouping. The same shape is
// used for adult males and youth males.
type PriesthoodCounts struct {
	HighPriest int
	Elder      int
	Priest     int
	Teacher    int
	Deacon     int
	Unordained int
}

// Melchizedek is the composite count of the adult priesthood offices.
func (p PriesthoodCounts) Melchizedek() int {
	return p.HighPriest + p.Elder
}

// Aaronic is the composite count of the preparatory priesthood offices.
func (p PriesthoodCounts) Aaronic() int {
	return p.Priest + p.Teacher + p.Deacon
}

func (p PriesthoodCounts) Total() int {
	return p.Melchizedek() + p.Aaronic() + p.Unordained
}

// Report is the aggregation's sole output: a closed set of named counts.
// It is assembled once per run by New and never mutated afterward.
type Report struct {
	Members    int
	NonMembers int
	Households int

	Primary int
	Youth   int
	Adults  int

	YoungMen   int
	YoungWomen int
	Brethren   int
	Sisters    int

	BrethrenWithCalling    int
	BrethrenWithoutCalling int
	SistersWithCalling     int
	SistersWithoutCalling  int

	BrethrenPriesthood PriesthoodCounts
	YoungMenPriesthood PriesthoodCounts

	EarlyChildhood  int
	PreBaptism      int
	BaptismEligible int

	Single18To30 int
	Single31To45 int
	Single46Plus int

	Endowed    int
	NotEndowed int

	RecommendActive              int
	RecommendCanceled            int
	RecommendExpiredLessThan1Mo  int
	RecommendExpiredLessThan3Mos int
	RecommendExpiredOver3Mos     int
	RecommendExpiringNextMonth   int
	RecommendExpiringThisMonth   int
	RecommendLostOrStolen        int

	CurrentRecommend int
	ExpiredRecommend int
}

// New aggregates the three input collections into a Report. Any record
// missing a required field aborts the run; an identifier absent from an
// auxiliary lookup is the common case and means "no calling" or "no
// recommend record."
func New(roster []models.Member, callings []models.Organization, recommends []models.RecommendStatus) (*Report, error) {
	if err := validateRoster(roster); err != nil {
		return nil, err
	}
	if err := validateRecommends(recommends); err != nil {
		return nil, err
	}

	callingLookup, err := CallingsByMemberID(callings)
	if err != nil {
		return nil, err
	}
	recommendLookup := RecommendsByMemberID(recommends)

	r := &Report{}

	members, nonMembers := MemberSplitter(roster)
	r.Members = len(members)
	r.NonMembers = len(nonMembers)
	r.Households = len(HouseholdGrouper(roster))

	// Age cohorts, first-match. The boundaries are disjoint today; the
	// ordering is a safety net against future edits.
	cohorts, err := partition.MultiPartition([]func(models.Member) bool{
		func(m models.Member) bool { return m.AgeYears() < 12 },
		func(m models.Member) bool { return m.AgeYears() >= 12 && m.AgeYears() <= 17 },
		func(m models.Member) bool { return m.AgeYears() > 17 },
	}, members)
	if err != nil {
		return nil, err
	}
	primary, youth, adults := cohorts[0], cohorts[1], cohorts[2]
	r.Primary = len(primary)
	r.Youth = len(youth)
	r.Adults = len(adults)

	youngMen, youngWomen := MaleSplitter(youth)
	r.YoungMen = len(youngMen)
	r.YoungWomen = len(youngWomen)

	brethren, sisters := MaleSplitter(adults)
	r.Brethren = len(brethren)
	r.Sisters = len(sisters)

	brethrenCalled, brethrenUncalled := CallingSplitter(callingLookup, brethren)
	r.BrethrenWithCalling = len(brethrenCalled)
	r.BrethrenWithoutCalling = len(brethrenUncalled)

	sistersCalled, sistersUncalled := CallingSplitter(callingLookup, sisters)
	r.SistersWithCalling = len(sistersCalled)
	r.SistersWithoutCalling = len(sistersUncalled)

	// The same six-bucket grouping serves both populations.
	r.BrethrenPriesthood = countPriesthood(PriesthoodGrouper(brethren))
	r.YoungMenPriesthood = countPriesthood(PriesthoodGrouper(youngMen))

	primaryAges, err := partition.MultiPartition([]func(models.Member) bool{
		func(m models.Member) bool { return m.AgeYears() <= 2 },
		func(m models.Member) bool { return m.AgeYears() > 2 && m.AgeYears() <= 7 },
		func(m models.Member) bool { return m.AgeYears() >= 8 },
	}, primary)
	if err != nil {
		return nil, err
	}
	r.EarlyChildhood = len(primaryAges[0])
	r.PreBaptism = len(primaryAges[1])
	r.BaptismEligible = len(primaryAges[2])

	single18, single31, single46, err := SinglesByAge(adults)
	if err != nil {
		return nil, err
	}
	r.Single18To30 = len(single18)
	r.Single31To45 = len(single31)
	r.Single46Plus = len(single46)

	endowed, notEndowed := EndowedSplitter(recommendLookup, adults)
	r.Endowed = len(endowed)
	r.NotEndowed = len(notEndowed)

	statuses := RecommendStatusGrouper(recommends)
	r.RecommendActive = len(statuses[constants.RecommendActive])
	r.RecommendCanceled = len(statuses[constants.RecommendCanceled])
	r.RecommendExpiredLessThan1Mo = len(statuses[constants.RecommendExpiredLessThan1Mo])
	r.RecommendExpiredLessThan3Mos = len(statuses[constants.RecommendExpiredLessThan3Mos])
	r.RecommendExpiredOver3Mos = len(statuses[constants.RecommendExpiredOver3Mos])
	r.RecommendExpiringNextMonth = len(statuses[constants.RecommendExpiringNextMonth])
	r.RecommendExpiringThisMonth = len(statuses[constants.RecommendExpiringThisMonth])
	r.RecommendLostOrStolen = len(statuses[constants.RecommendLostOrStolen])

	r.CurrentRecommend = r.RecommendActive + r.RecommendExpiringNextMonth + r.RecommendExpiringThisMonth
	r.ExpiredRecommend = r.RecommendCanceled + r.RecommendExpiredLessThan1Mo +
		r.RecommendExpiredLessThan3Mos + r.RecommendExpiredOver3Mos

	return r, nil
}

// validateRoster fails the run when a roster entry is missing a field the
// partitions depend on. Sex is a closed set; a value outside it would
// otherwise be silently miscounted by the binary sex split.
func validateRoster(roster []models.Member) error {
	for _, m := range roster {
		if m.Age == nil {
			return &werrors.MissingFieldError{Field: "age", RecordID: m.UUID}
		}
		if m.Sex == nil || (*m.Sex != constants.SexMale && *m.Sex != constants.SexFemale) {
			return &werrors.MissingFieldError{Field: "sex", RecordID: m.UUID}
		}
		if m.LegacyCmisID == 0 {
			return &werrors.MissingFieldError{Field: "legacyCmisId", RecordID: m.UUID}
		}
	}
	return nil
}

func validateRecommends(recommends []models.RecommendStatus) error {
	for _, rec := range recommends {
		if rec.LegacyCmisID == 0 {
			return &werrors.MissingFieldError{Field: "legacyCmisId", RecordID: "recommend record"}
		}
	}
	return nil
}

// MemberSplitter splits a roster into formal members and everyone else.
func MemberSplitter(roster []models.Member) (members, nonMembers []models.Member) {
	return partition.Partition(func(m models.Member) bool { return m.IsMember }, roster)
}

// AdultSplitter splits by the 18-year boundary.
func AdultSplitter(roster []models.Member) (adults, minors []models.Member) {
	return partition.Partition(models.Member.IsAdult, roster)
}

// MaleSplitter splits by sex.
func MaleSplitter(roster []models.Member) (males, females []models.Member) {
	return partition.Partition(models.Member.IsMale, roster)
}

// SingleSplitter splits by the single-adult flags.
func SingleSplitter(roster []models.Member) (single, notSingle []models.Member) {
	return partition.Partition(models.Member.IsSingle, roster)
}

// HouseholdGrouper groups roster entries by their household anchor person.
func HouseholdGrouper(roster []models.Member) map[string][]models.Member {
	households := make(map[string][]models.Member)
	for _, m := range roster {
		households[m.HouseholdAnchorPersonUUID] = append(households[m.HouseholdAnchorPersonUUID], m)
	}
	return households
}

// CallingsByMemberID flattens the nested organization groups into a lookup
// keyed by the legacy member id. A member appearing more than once keeps the
// last calling seen.
func CallingsByMemberID(orgs []models.Organization) (map[int64]models.Calling, error) {
	lookup := make(map[int64]models.Calling)
	for _, org := range orgs {
		for _, child := range org.Children {
			for _, calling := range child.Callings {
				if calling.MemberID == 0 {
					return nil, &werrors.MissingFieldError{Field: "memberId", RecordID: calling.Position}
				}
				lookup[calling.MemberID] = calling
			}
		}
	}
	return lookup, nil
}

// RecommendsByMemberID keys the recommend collection by the legacy member id.
func RecommendsByMemberID(recommends []models.RecommendStatus) map[int64]models.RecommendStatus {
	lookup := make(map[int64]models.RecommendStatus, len(recommends))
	for _, rec := range recommends {
		lookup[rec.LegacyCmisID] = rec
	}
	return lookup
}

// CallingSplitter splits members by whether the calling lookup has an entry
// for their legacy identifier. A lookup miss is "no calling", not an error.
func CallingSplitter(lookup map[int64]models.Calling, members []models.Member) (called, uncalled []models.Member) {
	return partition.Partition(func(m models.Member) bool {
		_, ok := lookup[m.LegacyCmisID]
		return ok
	}, members)
}

// EndowedSplitter splits members by whether their recommend record carries
// an endowment date. Members with no recommend record are not endowed.
func EndowedSplitter(lookup map[int64]models.RecommendStatus, members []models.Member) (endowed, notEndowed []models.Member) {
	return partition.Partition(func(m models.Member) bool {
		rec, ok := lookup[m.LegacyCmisID]
		return ok && rec.Endowed()
	}, members)
}

// countPriesthood collapses a priesthood grouping into its six counts.
func countPriesthood(groups map[string][]models.Member) PriesthoodCounts {
	return PriesthoodCounts{
		HighPriest: len(groups[constants.HighPriest]),
		Elder:      len(groups[constants.Elder]),
		Priest:     len(groups[constants.Priest]),
		Teacher:    len(groups[constants.Teacher]),
		Deacon:     len(groups[constants.Deacon]),
		Unordained: len(groups[constants.Unordained]),
	}
}

// PriesthoodGrouper groups members by priesthood office. The grouping is
// total: an unknown or absent office lands in UNORDAINED.
func PriesthoodGrouper(members []models.Member) map[string][]models.Member {
	groups := make(map[string][]models.Member, len(constants.PriesthoodOffices))
	for _, office := range constants.PriesthoodOffices {
		groups[office] = []models.Member{}
	}
	for _, m := range members {
		office := constants.Unordained
		if m.PriesthoodOffice != nil && utils.ContainsString(constants.PriesthoodOffices, *m.PriesthoodOffice) {
			office = *m.PriesthoodOffice
		}
		groups[office] = append(groups[office], m)
	}
	return groups
}

// RecommendStatusGrouper groups recommend records into the eight known
// statuses. Unlike the priesthood grouping there is no catch-all: a record
// with an unrecognized or missing status is dropped from every bucket.
func RecommendStatusGrouper(recommends []models.RecommendStatus) map[string][]models.RecommendStatus {
	groups := make(map[string][]models.RecommendStatus, len(constants.RecommendStatuses))
	for _, status := range constants.RecommendStatuses {
		groups[status] = []models.RecommendStatus{}
	}
	for _, rec := range recommends {
		if rec.RecommendStatus == nil {
			continue
		}
		if _, ok := groups[*rec.RecommendStatus]; ok {
			groups[*rec.RecommendStatus] = append(groups[*rec.RecommendStatus], rec)
		}
	}
	return groups
}

// SinglesByAge restricts members to those flagged single and buckets them by
// age band. The trailing catch-all exists only to satisfy exhaustiveness; a
// single under 18 lands there, which is a data anomaly worth a warning, not
// a report field.
func SinglesByAge(members []models.Member) (single18, single31, single46 []models.Member, err error) {
	single, _ := SingleSplitter(members)
	buckets, err := partition.MultiPartition([]func(models.Member) bool{
		func(m models.Member) bool { return m.AgeYears() >= 18 && m.AgeYears() <= 30 },
		func(m models.Member) bool { return m.AgeYears() >= 31 && m.AgeYears() <= 45 },
		func(m models.Member) bool { return m.AgeYears() >= 46 },
		func(m models.Member) bool { return true },
	}, single)
	if err != nil {
		return nil, nil, nil, err
	}
	if anomalies := len(buckets[3]); anomalies > 0 {
		log.Report.Warnf("%d single members fell outside every age band; excluded from the singles report", anomalies)
	}
	return buckets[0], buckets[1], buckets[2], nil
}

// Percent renders top out of bottom as a whole-percent string. A zero
// denominator reads as 0% rather than failing the render.
func Percent(top, bottom int) string {
	if bottom == 0 {
		return "0%"
	}
	return strconv.Itoa(int(math.Round(float64(top)/float64(bottom)*100))) + "%"
}
