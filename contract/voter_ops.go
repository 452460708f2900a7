package contract

import (
	"fmt"

	"evote/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Voter Lifecycle ---

// CreateVoter enrolls a voter. A fresh Ballot for the election is issued
// first and the voter record references it; one voter, one ballot.
func (s *ElectionSmartContract) CreateVoter(ctx contractapi.TransactionContextInterface,
	email, cin, firstName, secondName, identificationCardRecto, identificationCardVerso, areaID, electionID string) (*model.Voter, error) {

	logger.Infof("CreateVoter: enrolling '%s' for election '%s'", email, electionID)

	if err := s.validateRequiredString(email, "email", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(cin, "cin", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(firstName, "firstName", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(secondName, "secondName", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateOptionalString(identificationCardRecto, "identificationCardRecto", maxDescriptionLength); err != nil {
		return nil, err
	}
	if err := s.validateOptionalString(identificationCardVerso, "identificationCardVerso", maxDescriptionLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(areaID, "areaId", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(electionID, "electionId", maxStringInputLength); err != nil {
		return nil, err
	}

	ballot, err := s.CreateBallot(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("CreateVoter: failed to issue ballot: %w", err)
	}

	voter := model.NewVoter(email, cin, firstName, secondName, identificationCardRecto, identificationCardVerso, areaID, ballot.ID)
	if err := s.putEntity(ctx, voter.ID, voter); err != nil {
		return nil, fmt.Errorf("CreateVoter: %w", err)
	}

	logger.Infof("CreateVoter: voter '%s' created with ballot '%s'", voter.ID, ballot.ID)
	return voter, nil
}

// AuthorizeVoter flips the authorized flag to true and notifies the voter by
// email (via the VoterAuthorized event consumed off-chain). Calling it on an
// already authorized voter is a no-op.
func (s *ElectionSmartContract) AuthorizeVoter(ctx contractapi.TransactionContextInterface, id string) (string, error) {
	logger.Infof("AuthorizeVoter: '%s'", id)
	voter, err := s.readVoter(ctx, id)
	if err != nil {
		return "", fmt.Errorf("AuthorizeVoter: %w", err)
	}
	if voter.Authorized {
		return fmt.Sprintf("voter with id %s is already authorized", id), nil
	}
	voter.Authorized = true
	if err := s.putEntity(ctx, voter.ID, voter); err != nil {
		return "", fmt.Errorf("AuthorizeVoter: %w", err)
	}
	s.emitVoterAuthorizedEvent(ctx, voter)
	return fmt.Sprintf("voter with id %s has been authorized successfully", id), nil
}

// UnauthorizeVoter flips the authorized flag back to false. No-op if already
// unauthorized.
func (s *ElectionSmartContract) UnauthorizeVoter(ctx contractapi.TransactionContextInterface, id string) (string, error) {
	logger.Infof("UnauthorizeVoter: '%s'", id)
	voter, err := s.readVoter(ctx, id)
	if err != nil {
		return "", fmt.Errorf("UnauthorizeVoter: %w", err)
	}
	if !voter.Authorized {
		return fmt.Sprintf("voter with id %s is already unauthorized", id), nil
	}
	voter.Authorized = false
	if err := s.putEntity(ctx, voter.ID, voter); err != nil {
		return "", fmt.Errorf("UnauthorizeVoter: %w", err)
	}
	return fmt.Sprintf("voter with id %s has been unauthorized successfully", id), nil
}

// RejecteVoter marks a voter as rejected. No-op if already rejected.
func (s *ElectionSmartContract) RejecteVoter(ctx contractapi.TransactionContextInterface, id string) (string, error) {
	logger.Infof("RejecteVoter: '%s'", id)
	voter, err := s.readVoter(ctx, id)
	if err != nil {
		return "", fmt.Errorf("RejecteVoter: %w", err)
	}
	if voter.Rejected {
		return fmt.Sprintf("voter with id %s is already rejected", id), nil
	}
	voter.Rejected = true
	if err := s.putEntity(ctx, voter.ID, voter); err != nil {
		return "", fmt.Errorf("RejecteVoter: %w", err)
	}
	return fmt.Sprintf("voter with id %s has been rejected successfully", id), nil
}

// ApproveVoter clears the rejected flag. A voter whose flag is already false
// is reported as already approved, whether or not it was ever rejected.
func (s *ElectionSmartContract) ApproveVoter(ctx contractapi.TransactionContextInterface, id string) (string, error) {
	logger.Infof("ApproveVoter: '%s'", id)
	voter, err := s.readVoter(ctx, id)
	if err != nil {
		return "", fmt.Errorf("ApproveVoter: %w", err)
	}
	if !voter.Rejected {
		return fmt.Sprintf("voter with id %s is already approved", id), nil
	}
	voter.Rejected = false
	if err := s.putEntity(ctx, voter.ID, voter); err != nil {
		return "", fmt.Errorf("ApproveVoter: %w", err)
	}
	return fmt.Sprintf("voter with id %s has been approved successfully", id), nil
}

// GetAllUnauthorizedVoters returns voters still awaiting review: neither
// authorized nor rejected.
func (s *ElectionSmartContract) GetAllUnauthorizedVoters(ctx contractapi.TransactionContextInterface) ([]*model.Voter, error) {
	logger.Debug("GetAllUnauthorizedVoters")
	voters, err := s.queryVoters(ctx, map[string]interface{}{
		"authorized": false,
		"rejected":   false,
	})
	if err != nil {
		return nil, fmt.Errorf("GetAllUnauthorizedVoters: %w", err)
	}
	return voters, nil
}

// SetVoterStatus is an administrative override that forces a voter's ballot
// to the given cast state, bypassing the normal vote path. It is the only way
// a cast ballot can revert to open.
func (s *ElectionSmartContract) SetVoterStatus(ctx contractapi.TransactionContextInterface, id string, status bool) (*model.Ballot, error) {
	logger.Infof("SetVoterStatus: forcing ballot of voter '%s' to cast=%t", id, status)
	voter, err := s.readVoter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("SetVoterStatus: %w", err)
	}
	ballot, err := s.readBallot(ctx, voter.BallotID)
	if err != nil {
		return nil, fmt.Errorf("SetVoterStatus: %w", err)
	}
	ballot.BallotCast = status
	if err := s.putEntity(ctx, ballot.ID, ballot); err != nil {
		return nil, fmt.Errorf("SetVoterStatus: %w", err)
	}
	return ballot, nil
}
