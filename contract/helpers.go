package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"evote/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Core Helper Methods (used across multiple operations) ---

// getCurrentTxTimestamp retrieves the current transaction timestamp from the stub.
func (s *ElectionSmartContract) getCurrentTxTimestamp(ctx contractapi.TransactionContextInterface) (time.Time, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	return ts.AsTime(), nil
}

// currentLedgerDate returns the transaction timestamp truncated to a calendar
// day. All election window comparisons are day-granular, and using the tx
// timestamp (not wall clock) keeps them deterministic across endorsers.
func (s *ElectionSmartContract) currentLedgerDate(ctx contractapi.TransactionContextInterface) (time.Time, error) {
	ts, err := s.getCurrentTxTimestamp(ctx)
	if err != nil {
		return time.Time{}, err
	}
	t := ts.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseWireDate parses a DD-MM-YYYY date string.
func parseWireDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s '%s' (expected DD-MM-YYYY): %v", field, value, err)
	}
	return t, nil
}

// electionOpenOn reports whether votes are accepted on the given day:
// strictly after startDate and strictly before endDate. An election whose
// dates fail to parse is never open.
func electionOpenOn(day time.Time, election *model.Election) bool {
	startDate, errStart := time.Parse(dateLayout, election.StartDate)
	endDate, errEnd := time.Parse(dateLayout, election.EndDate)
	if errStart != nil || errEnd != nil {
		logger.Warningf("Election '%s' has unparseable dates (start: '%s', end: '%s'). Treating as closed.",
			election.ID, election.StartDate, election.EndDate)
		return false
	}
	return day.After(startDate) && day.Before(endDate)
}

// --- Validation Helper Functions ---

func (s *ElectionSmartContract) validateRequiredString(input, field string, max int) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if len(input) > max {
		return fmt.Errorf("%s exceeds max length %d", field, max)
	}
	return nil
}

func (s *ElectionSmartContract) validateOptionalString(input, field string, max int) error {
	if input != "" && len(input) > max {
		return fmt.Errorf("%s exceeds max length %d", field, max)
	}
	return nil
}

// --- State Access Helpers ---

// putEntity marshals an entity and writes it under the given key.
func (s *ElectionSmartContract) putEntity(ctx contractapi.TransactionContextInterface, key string, entity interface{}) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal state for key '%s': %w", key, err)
	}
	if err := ctx.GetStub().PutState(key, data); err != nil {
		return fmt.Errorf("failed to write state for key '%s': %w", key, err)
	}
	return nil
}

func (s *ElectionSmartContract) readVoter(ctx contractapi.TransactionContextInterface, id string) (*model.Voter, error) {
	data, err := ctx.GetStub().GetState(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read voter '%s' from ledger: %w", id, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("voter with id '%s' does not exist", id)
	}
	var voter model.Voter
	if err := json.Unmarshal(data, &voter); err != nil {
		return nil, fmt.Errorf("%w: voter '%s': %v", ErrMalformedRecord, id, err)
	}
	return &voter, nil
}

func (s *ElectionSmartContract) readBallot(ctx contractapi.TransactionContextInterface, id string) (*model.Ballot, error) {
	data, err := ctx.GetStub().GetState(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read ballot '%s' from ledger: %w", id, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("ballot with id '%s' does not exist", id)
	}
	var ballot model.Ballot
	if err := json.Unmarshal(data, &ballot); err != nil {
		return nil, fmt.Errorf("%w: ballot '%s': %v", ErrMalformedRecord, id, err)
	}
	return &ballot, nil
}

func (s *ElectionSmartContract) readElection(ctx contractapi.TransactionContextInterface, id string) (*model.Election, error) {
	data, err := ctx.GetStub().GetState(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read election '%s' from ledger: %w", id, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("election with id '%s' does not exist", id)
	}
	var election model.Election
	if err := json.Unmarshal(data, &election); err != nil {
		return nil, fmt.Errorf("%w: election '%s': %v", ErrMalformedRecord, id, err)
	}
	return &election, nil
}

func (s *ElectionSmartContract) readCandidat(ctx contractapi.TransactionContextInterface, id string) (*model.Candidat, error) {
	data, err := ctx.GetStub().GetState(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidat '%s' from ledger: %w", id, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("candidat with id '%s' does not exist", id)
	}
	var candidat model.Candidat
	if err := json.Unmarshal(data, &candidat); err != nil {
		return nil, fmt.Errorf("%w: candidat '%s': %v", ErrMalformedRecord, id, err)
	}
	return &candidat, nil
}

// --- Events ---

// emitVoterAuthorizedEvent notifies the off-chain mailer that a voter may now
// vote. Fire-and-forget: an emission failure is logged, never fails the
// transaction.
func (s *ElectionSmartContract) emitVoterAuthorizedEvent(ctx contractapi.TransactionContextInterface, voter *model.Voter) {
	payload, err := json.Marshal(map[string]string{
		"voterId": voter.ID,
		"email":   voter.Email,
	})
	if err != nil {
		logger.Warningf("emitVoterAuthorizedEvent: failed to marshal payload for voter '%s': %v", voter.ID, err)
		return
	}
	if err := ctx.GetStub().SetEvent("VoterAuthorized", payload); err != nil {
		logger.Warningf("emitVoterAuthorizedEvent: failed to set event for voter '%s': %v", voter.ID, err)
	}
}
