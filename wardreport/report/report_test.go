package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/lrnselfreliance/wardreport/wardreport/client"
	"github.com/lrnselfreliance/wardreport/wardreport/constants"
	werrors "github.com/lrnselfreliance/wardreport/wardreport/errors"
	"github.com/lrnselfreliance/wardreport/wardreport/models"
	"github.com/lrnselfreliance/wardreport/wardreport/testUtils"
)

type ReportTestSuite struct {
	suite.Suite
	bundle *models.DataBundle
}

func (s *ReportTestSuite) SetupSuite() {
	bundle, err := client.LoadBundleFixture("data.json")
	s.Require().NoError(err)
	s.bundle = bundle
}

func (s *ReportTestSuite) TestNew() {
	r, err := New(s.bundle.MemberList, s.bundle.Callings, s.bundle.RecommendStatus)
	s.Require().NoError(err)

	s.Equal(25, r.Members)
	s.Equal(19, r.NonMembers)
	s.Equal(25, r.Households)

	s.Equal(5, r.Primary)
	s.Equal(4, r.Youth)
	s.Equal(16, r.Adults)

	s.Equal(2, r.YoungMen)
	s.Equal(2, r.YoungWomen)
	s.Equal(9, r.Brethren)
	s.Equal(7, r.Sisters)

	s.Equal(2, r.BrethrenWithCalling)
	s.Equal(7, r.BrethrenWithoutCalling)
	s.Equal(2, r.SistersWithCalling)
	s.Equal(5, r.SistersWithoutCalling)

	s.Equal(PriesthoodCounts{HighPriest: 2, Elder: 2, Teacher: 2, Deacon: 1, Unordained: 2}, r.BrethrenPriesthood)
	s.Equal(PriesthoodCounts{Teacher: 1, Unordained: 1}, r.YoungMenPriesthood)

	s.Equal(1, r.EarlyChildhood)
	s.Equal(2, r.PreBaptism)
	s.Equal(2, r.BaptismEligible)

	s.Equal(0, r.Single18To30)
	s.Equal(1, r.Single31To45)
	s.Equal(8, r.Single46Plus)

	s.Equal(12, r.Endowed)
	s.Equal(4, r.NotEndowed)

	s.Equal(3, r.RecommendActive)
	s.Equal(3, r.RecommendCanceled)
	s.Equal(6, r.RecommendExpiredLessThan1Mo)
	s.Equal(4, r.RecommendExpiredLessThan3Mos)
	s.Equal(2, r.RecommendExpiredOver3Mos)
	s.Equal(7, r.RecommendExpiringNextMonth)
	s.Equal(1, r.RecommendExpiringThisMonth)
	s.Equal(3, r.RecommendLostOrStolen)

	s.Equal(11, r.CurrentRecommend)
	s.Equal(15, r.ExpiredRecommend)
}

func (s *ReportTestSuite) TestNewMissingAge() {
	roster := []models.Member{testUtils.MakeMember("abc", 1001, 30, constants.SexMale, true)}
	roster[0].Age = nil

	r, err := New(roster, nil, nil)
	s.Nil(r)

	var missing *werrors.MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Equal("age", missing.Field)
	s.Equal("abc", missing.RecordID)
}

func (s *ReportTestSuite) TestNewMissingSex() {
	roster := []models.Member{testUtils.MakeMember("abc", 1001, 30, constants.SexMale, true)}
	roster[0].Sex = nil

	_, err := New(roster, nil, nil)
	var missing *werrors.MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Equal("sex", missing.Field)
}

func (s *ReportTestSuite) TestNewUnknownSex() {
	roster := []models.Member{testUtils.MakeMember("abc", 1001, 30, "X", true)}

	_, err := New(roster, nil, nil)
	var missing *werrors.MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Equal("sex", missing.Field)
}

func (s *ReportTestSuite) TestNewMissingLegacyID() {
	roster := []models.Member{testUtils.MakeMember("abc", 0, 30, constants.SexFemale, true)}

	_, err := New(roster, nil, nil)
	var missing *werrors.MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Equal("legacyCmisId", missing.Field)
}

func (s *ReportTestSuite) TestNewMissingRecommendLegacyID() {
	recommends := []models.RecommendStatus{{}}

	_, err := New(nil, nil, recommends)
	var missing *werrors.MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Equal("legacyCmisId", missing.Field)
}

func (s *ReportTestSuite) TestNewEmptyInputs() {
	r, err := New(nil, nil, nil)
	s.Require().NoError(err)
	s.Equal(0, r.Members)
	s.Equal(0, r.Households)
	s.Equal(PriesthoodCounts{}, r.BrethrenPriesthood)
}

func (s *ReportTestSuite) TestMemberSplitter() {
	members, nonMembers := MemberSplitter(s.bundle.MemberList)
	s.Len(members, 25)
	s.Len(nonMembers, 19)
}

func (s *ReportTestSuite) TestAdultSplitter() {
	adults, minors := AdultSplitter(s.bundle.MemberList)
	s.Len(adults, 29)
	s.Len(minors, 15)
}

func (s *ReportTestSuite) TestMaleSplitter() {
	males, females := MaleSplitter(s.bundle.MemberList)
	s.Len(males, 21)
	s.Len(females, 23)
}

func (s *ReportTestSuite) TestSingleSplitter() {
	single, notSingle := SingleSplitter(s.bundle.MemberList)
	s.Len(single, 12)
	s.Len(notSingle, 32)
}

func (s *ReportTestSuite) TestHouseholdGrouper() {
	households := HouseholdGrouper(s.bundle.MemberList)
	s.Len(households, 25)

	total := 0
	for _, residents := range households {
		total += len(residents)
	}
	s.Equal(len(s.bundle.MemberList), total)
}

func (s *ReportTestSuite) TestCallingsByMemberID() {
	lookup, err := CallingsByMemberID(s.bundle.Callings)
	s.Require().NoError(err)
	s.Len(lookup, 4)
	s.Equal("Elders Quorum President", lookup[1020].Position)
	s.Equal("Relief Society President", lookup[1035].Position)
}

func (s *ReportTestSuite) TestCallingsByMemberIDMissingID() {
	orgs := []models.Organization{{
		Name: "Elders Quorum",
		Children: []models.SubOrganization{{
			Callings: []models.Calling{{Position: "Elders Quorum President"}},
		}},
	}}

	lookup, err := CallingsByMemberID(orgs)
	s.Nil(lookup)

	var missing *werrors.MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Equal("memberId", missing.Field)
	s.Equal("Elders Quorum President", missing.RecordID)
}

func (s *ReportTestSuite) TestCallingsByMemberIDLastWins() {
	orgs := []models.Organization{{
		Children: []models.SubOrganization{{
			Callings: []models.Calling{
				{MemberID: 1001, Position: "Clerk"},
				{MemberID: 1001, Position: "Teacher"},
			},
		}},
	}}

	lookup, err := CallingsByMemberID(orgs)
	s.Require().NoError(err)
	s.Len(lookup, 1)
	s.Equal("Teacher", lookup[1001].Position)
}

func (s *ReportTestSuite) TestCallingSplitter() {
	lookup, err := CallingsByMemberID(s.bundle.Callings)
	s.Require().NoError(err)

	called, uncalled := CallingSplitter(lookup, s.bundle.MemberList)
	s.Len(called, 4)
	s.Len(uncalled, 40)
}

func (s *ReportTestSuite) TestRecommendsByMemberID() {
	lookup := RecommendsByMemberID(s.bundle.RecommendStatus)
	s.Len(lookup, 29)
	s.Equal(constants.RecommendActive, *lookup[1016].RecommendStatus)
}

func (s *ReportTestSuite) TestPriesthoodGrouper() {
	males, _ := MaleSplitter(s.bundle.MemberList)
	groups := PriesthoodGrouper(males)

	s.Len(groups, len(constants.PriesthoodOffices))
	s.Len(groups[constants.HighPriest], 2)
	s.Len(groups[constants.Elder], 2)
	s.Len(groups[constants.Priest], 1)
	s.Len(groups[constants.Teacher], 3)
	s.Len(groups[constants.Deacon], 1)
	s.Len(groups[constants.Unordained], 12)
}

func (s *ReportTestSuite) TestCountPriesthood() {
	males, _ := MaleSplitter(s.bundle.MemberList)

	counts := countPriesthood(PriesthoodGrouper(males))
	s.Equal(PriesthoodCounts{HighPriest: 2, Elder: 2, Priest: 1, Teacher: 3, Deacon: 1, Unordained: 12}, counts)
	s.Equal(len(males), counts.Total())
}

func (s *ReportTestSuite) TestCountPriesthoodEmpty() {
	s.Equal(PriesthoodCounts{}, countPriesthood(PriesthoodGrouper(nil)))
}

func (s *ReportTestSuite) TestPriesthoodGrouperUnknownOffice() {
	m := testUtils.MakeMember("abc", 1001, 40, constants.SexMale, true)
	m.PriesthoodOffice = testUtils.StrPtr("BISHOP_OF_THE_MOON")

	groups := PriesthoodGrouper([]models.Member{m})
	s.Len(groups[constants.Unordained], 1)
}

func (s *ReportTestSuite) TestRecommendStatusGrouper() {
	groups := RecommendStatusGrouper(s.bundle.RecommendStatus)

	s.Len(groups[constants.RecommendActive], 3)
	s.Len(groups[constants.RecommendCanceled], 3)
	s.Len(groups[constants.RecommendExpiredLessThan1Mo], 6)
	s.Len(groups[constants.RecommendExpiredLessThan3Mos], 4)
	s.Len(groups[constants.RecommendExpiredOver3Mos], 2)
	s.Len(groups[constants.RecommendExpiringNextMonth], 7)
	s.Len(groups[constants.RecommendExpiringThisMonth], 1)
	s.Len(groups[constants.RecommendLostOrStolen], 3)
}

func (s *ReportTestSuite) TestRecommendStatusGrouperDropsUnknown() {
	recommends := []models.RecommendStatus{
		{LegacyCmisID: 1001, RecommendStatus: testUtils.StrPtr("NONSENSE")},
		{LegacyCmisID: 1002},
		{LegacyCmisID: 1003, RecommendStatus: testUtils.StrPtr(constants.RecommendActive)},
	}

	groups := RecommendStatusGrouper(recommends)
	total := 0
	for _, recs := range groups {
		total += len(recs)
	}
	s.Equal(1, total)
	s.Len(groups[constants.RecommendActive], 1)
}

func (s *ReportTestSuite) TestSinglesByAge() {
	single18, single31, single46, err := SinglesByAge(s.bundle.MemberList)
	s.Require().NoError(err)
	s.Len(single18, 2)
	s.Len(single31, 1)
	s.Len(single46, 9)
}

func (s *ReportTestSuite) TestEndowedSplitter() {
	lookup := RecommendsByMemberID(s.bundle.RecommendStatus)
	members, _ := MemberSplitter(s.bundle.MemberList)
	adults, _ := AdultSplitter(members)

	endowed, notEndowed := EndowedSplitter(lookup, adults)
	s.Len(endowed, 12)
	s.Len(notEndowed, 4)
}

func (s *ReportTestSuite) TestPriesthoodCounts() {
	counts := PriesthoodCounts{HighPriest: 2, Elder: 3, Priest: 1, Teacher: 2, Deacon: 1, Unordained: 4}
	s.Equal(5, counts.Melchizedek())
	s.Equal(4, counts.Aaronic())
	s.Equal(13, counts.Total())
}

func TestReportTestSuite(t *testing.T) {
	suite.Run(t, new(ReportTestSuite))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		top, bottom int
		expected    string
	}{
		{4, 2, "200%"},
		{2, 2, "100%"},
		{1, 2, "50%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{0, 5, "0%"},
		{1, 0, "0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Percent(tt.top, tt.bottom), "%d of %d", tt.top, tt.bottom)
	}
}
