package contract

import (
	"testing"
	"time"

	"evote/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// voteFixture seeds an election, one candidate and one voter with a ballot.
func voteFixture(t *testing.T, s *ElectionSmartContract, ctx *contractapi.TransactionContext) (*model.Election, *model.Candidat, *model.Voter) {
	t.Helper()
	election, err := s.CreateElection(ctx, "E1", 2024, "01-01-2024", "31-12-2024")
	require.NoError(t, err)
	candidat, err := s.CreateCandidat(ctx, "A", "B", "desc", election.ID, "area-1", "parti-1")
	require.NoError(t, err)
	voter, err := s.CreateVoter(ctx, "a@b.tld", "K123456", "Amina", "Haddad", "", "", "area-1", election.ID)
	require.NoError(t, err)
	return election, candidat, voter
}

func TestCastVoteHappyPathAndAlreadyVoted(t *testing.T) {
	ctx, stub := newTestContext()
	stub.txTime = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	s := &ElectionSmartContract{}
	election, candidat, voter := voteFixture(t, s, ctx)

	msg, err := s.CastVote(ctx, candidat.ID, election.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, "Voted successfully", msg)

	storedCandidat, err := s.readCandidat(ctx, candidat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, storedCandidat.Count)

	storedBallot, err := s.readBallot(ctx, voter.BallotID)
	require.NoError(t, err)
	assert.True(t, storedBallot.BallotCast)

	// a second cast on the same ballot is refused and the tally holds
	msg, err = s.CastVote(ctx, candidat.ID, election.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, "this voter has already cast this ballot!", msg)

	storedCandidat, err = s.readCandidat(ctx, candidat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, storedCandidat.Count)
}

func TestCastVoteElectionMissing(t *testing.T) {
	ctx, _ := newTestContext()
	s := &ElectionSmartContract{}

	msg, err := s.CastVote(ctx, "candidat-1", "no-such-election", "voter-1")
	require.NoError(t, err)
	assert.Equal(t, "the election or the voter does not exist!", msg)
}

func TestCastVoteOutsideWindow(t *testing.T) {
	for name, txTime := range map[string]time.Time{
		"before start": time.Date(2023, time.December, 20, 10, 0, 0, 0, time.UTC),
		"on start day": time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC),
		"on end day":   time.Date(2024, time.December, 31, 10, 0, 0, 0, time.UTC),
		"after end":    time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC),
	} {
		t.Run(name, func(t *testing.T) {
			ctx, stub := newTestContext()
			s := &ElectionSmartContract{}
			election, candidat, voter := voteFixture(t, s, ctx)
			stub.txTime = txTime

			msg, err := s.CastVote(ctx, candidat.ID, election.ID, voter.ID)
			require.NoError(t, err)
			assert.Equal(t, "the election is not open now!", msg)

			storedCandidat, err := s.readCandidat(ctx, candidat.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, storedCandidat.Count)
			storedBallot, err := s.readBallot(ctx, voter.BallotID)
			require.NoError(t, err)
			assert.False(t, storedBallot.BallotCast)
		})
	}
}

func TestCastVoteMalformedElectionDatesStayClosed(t *testing.T) {
	ctx, _ := newTestContext()
	s := &ElectionSmartContract{}
	_, candidat, voter := voteFixture(t, s, ctx)

	// corrupt the window after creation; the vote must be refused, not counted
	election, err := s.CreateElection(ctx, "E2", 2024, "01-01-2024", "31-12-2024")
	require.NoError(t, err)
	election.StartDate = "not-a-date"
	require.NoError(t, s.putEntity(ctx, election.ID, election))

	msg, err := s.CastVote(ctx, candidat.ID, election.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, "the election is not open now!", msg)

	storedCandidat, err := s.readCandidat(ctx, candidat.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, storedCandidat.Count)
}

func TestCastVoteCandidateMissing(t *testing.T) {
	ctx, stub := newTestContext()
	stub.txTime = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	s := &ElectionSmartContract{}
	election, _, voter := voteFixture(t, s, ctx)

	msg, err := s.CastVote(ctx, "no-such-candidat", election.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, "VotableId does not exist!", msg)

	storedBallot, err := s.readBallot(ctx, voter.BallotID)
	require.NoError(t, err)
	assert.False(t, storedBallot.BallotCast, "rejection must not consume the ballot")
}

func TestCastVoteVoterMissing(t *testing.T) {
	ctx, _ := newTestContext()
	s := &ElectionSmartContract{}
	election, candidat, _ := voteFixture(t, s, ctx)

	_, err := s.CastVote(ctx, candidat.ID, election.ID, "no-such-voter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestCreateBallotAndGetBallotById(t *testing.T) {
	ctx, _ := newTestContext()
	s := &ElectionSmartContract{}

	ballot, err := s.CreateBallot(ctx, "election-1")
	require.NoError(t, err)
	assert.Equal(t, model.BallotObjectType, ballot.Type)
	assert.False(t, ballot.BallotCast)

	found, err := s.GetBallotById(ctx, ballot.ID)
	require.NoError(t, err)
	assert.Equal(t, ballot.ID, found.ID)
	assert.Equal(t, "election-1", found.ElectionID)

	_, err = s.GetBallotById(ctx, "no-such-ballot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
