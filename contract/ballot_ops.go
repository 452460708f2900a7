package contract

import (
	"fmt"

	"evote/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Ballot & Voting Engine ---

// CreateBallot issues a fresh single-use ballot for an election.
func (s *ElectionSmartContract) CreateBallot(ctx contractapi.TransactionContextInterface, electionID string) (*model.Ballot, error) {
	if err := s.validateRequiredString(electionID, "electionId", maxStringInputLength); err != nil {
		return nil, err
	}
	ballot := model.NewBallot(electionID)
	if err := s.putEntity(ctx, ballot.ID, ballot); err != nil {
		return nil, fmt.Errorf("CreateBallot: %w", err)
	}
	logger.Debugf("CreateBallot: ballot '%s' issued for election '%s'", ballot.ID, electionID)
	return ballot, nil
}

// GetBallotById looks a ballot up through the query engine.
func (s *ElectionSmartContract) GetBallotById(ctx contractapi.TransactionContextInterface, ballotID string) (*model.Ballot, error) {
	logger.Debugf("GetBallotById: '%s'", ballotID)
	if err := s.validateRequiredString(ballotID, "ballotId", maxStringInputLength); err != nil {
		return nil, err
	}
	ballots, err := s.queryBallots(ctx, map[string]interface{}{"id": ballotID})
	if err != nil {
		return nil, fmt.Errorf("GetBallotById: %w", err)
	}
	if len(ballots) == 0 {
		return nil, fmt.Errorf("ballot with id '%s' does not exist", ballotID)
	}
	return ballots[0], nil
}

// CastVote records one vote: the candidate's tally goes up by one and the
// voter's ballot flips to cast, both in the same transaction. Each rejection
// path returns a descriptive outcome without touching state; the ballotCast
// guard is what makes a re-invocation (or a raced duplicate) harmless.
//
// Preconditions are checked in order: election exists, voter and ballot load,
// ballot not yet cast, election window open, candidate exists.
func (s *ElectionSmartContract) CastVote(ctx contractapi.TransactionContextInterface, candidatID, electionID, voterID string) (string, error) {
	logger.Infof("CastVote: voter '%s' voting for candidat '%s' in election '%s'", voterID, candidatID, electionID)

	if err := s.validateRequiredString(candidatID, "candidatId", maxStringInputLength); err != nil {
		return "", err
	}
	if err := s.validateRequiredString(electionID, "electionId", maxStringInputLength); err != nil {
		return "", err
	}
	if err := s.validateRequiredString(voterID, "voterId", maxStringInputLength); err != nil {
		return "", err
	}

	electionExists, err := s.MyAssetExists(ctx, electionID)
	if err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}
	if !electionExists {
		return "the election or the voter does not exist!", nil
	}
	election, err := s.readElection(ctx, electionID)
	if err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}

	voter, err := s.readVoter(ctx, voterID)
	if err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}
	ballot, err := s.readBallot(ctx, voter.BallotID)
	if err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}

	if ballot.BallotCast {
		return "this voter has already cast this ballot!", nil
	}

	today, err := s.currentLedgerDate(ctx)
	if err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}
	if !electionOpenOn(today, election) {
		return "the election is not open now!", nil
	}

	candidatExists, err := s.MyAssetExists(ctx, candidatID)
	if err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}
	if !candidatExists {
		return "VotableId does not exist!", nil
	}
	candidat, err := s.readCandidat(ctx, candidatID)
	if err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}

	candidat.Count++
	ballot.BallotCast = true

	if err := s.putEntity(ctx, candidat.ID, candidat); err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}
	if err := s.putEntity(ctx, ballot.ID, ballot); err != nil {
		return "", fmt.Errorf("CastVote: %w", err)
	}

	logger.Infof("CastVote: ballot '%s' cast for candidat '%s' (count now %d)", ballot.ID, candidat.ID, candidat.Count)
	return "Voted successfully", nil
}
