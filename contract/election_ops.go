package contract

import (
	"encoding/json"
	"fmt"

	"evote/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Election Lifecycle ---

// CreateElection records a new election. Dates must be DD-MM-YYYY; whether
// startDate precedes endDate is the caller's responsibility.
func (s *ElectionSmartContract) CreateElection(ctx contractapi.TransactionContextInterface, name string, year int, startDate, endDate string) (*model.Election, error) {
	logger.Infof("CreateElection: '%s' (%d)", name, year)
	if err := s.validateRequiredString(name, "name", maxStringInputLength); err != nil {
		return nil, err
	}
	if _, err := parseWireDate(startDate, "startDate"); err != nil {
		return nil, err
	}
	if _, err := parseWireDate(endDate, "endDate"); err != nil {
		return nil, err
	}

	election := model.NewElection(name, year, startDate, endDate)
	if err := s.putEntity(ctx, election.ID, election); err != nil {
		return nil, fmt.Errorf("CreateElection: %w", err)
	}
	return election, nil
}

// GetCurrentElections returns this year's elections whose voting window is
// open today (strictly between startDate and endDate).
func (s *ElectionSmartContract) GetCurrentElections(ctx contractapi.TransactionContextInterface) ([]*model.Election, error) {
	logger.Debug("GetCurrentElections")
	today, err := s.currentLedgerDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetCurrentElections: %w", err)
	}

	elections, err := s.queryElections(ctx, map[string]interface{}{"year": today.Year()})
	if err != nil {
		return nil, fmt.Errorf("GetCurrentElections: %w", err)
	}

	availableElections := []*model.Election{}
	for _, election := range elections {
		if electionOpenOn(today, election) {
			availableElections = append(availableElections, election)
		}
	}
	return availableElections, nil
}

// GetElectionResults returns the election's candidates with their tallies as
// a JSON array. Before the election's end date it refuses with a message
// instead, so partial tallies never leak.
func (s *ElectionSmartContract) GetElectionResults(ctx contractapi.TransactionContextInterface, id string) (string, error) {
	logger.Infof("GetElectionResults: '%s'", id)
	if err := s.validateRequiredString(id, "electionId", maxStringInputLength); err != nil {
		return "", err
	}
	election, err := s.readElection(ctx, id)
	if err != nil {
		return "", fmt.Errorf("GetElectionResults: %w", err)
	}

	today, err := s.currentLedgerDate(ctx)
	if err != nil {
		return "", fmt.Errorf("GetElectionResults: %w", err)
	}
	endDate, err := parseWireDate(election.EndDate, "endDate")
	if err != nil {
		return "", fmt.Errorf("GetElectionResults: election '%s': %w", id, err)
	}
	if today.Before(endDate) {
		return fmt.Sprintf("election with id %s haven't finished yet.", id), nil
	}

	candidats, err := s.queryCandidats(ctx, map[string]interface{}{"electionId": id})
	if err != nil {
		return "", fmt.Errorf("GetElectionResults: %w", err)
	}
	out, err := json.Marshal(candidats)
	if err != nil {
		return "", fmt.Errorf("GetElectionResults: failed to marshal results: %w", err)
	}
	return string(out), nil
}
