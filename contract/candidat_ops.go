package contract

import (
	"fmt"

	"evote/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Candidate Registry ---

// CreateCandidat registers a candidate for an election, with a zero tally.
func (s *ElectionSmartContract) CreateCandidat(ctx contractapi.TransactionContextInterface,
	firstName, secondName, description, electionID, areaID, partiID string) (*model.Candidat, error) {

	logger.Infof("CreateCandidat: '%s %s' for election '%s'", firstName, secondName, electionID)

	if err := s.validateRequiredString(firstName, "firstName", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(secondName, "secondName", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateOptionalString(description, "description", maxDescriptionLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(electionID, "electionId", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(areaID, "areaId", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(partiID, "partiId", maxStringInputLength); err != nil {
		return nil, err
	}

	candidat := model.NewCandidat(firstName, secondName, description, electionID, areaID, partiID)
	if err := s.putEntity(ctx, candidat.ID, candidat); err != nil {
		return nil, fmt.Errorf("CreateCandidat: %w", err)
	}
	return candidat, nil
}

// GetCandidatById returns one candidate by ledger key.
func (s *ElectionSmartContract) GetCandidatById(ctx contractapi.TransactionContextInterface, candidatID string) (*model.Candidat, error) {
	logger.Debugf("GetCandidatById: '%s'", candidatID)
	if err := s.validateRequiredString(candidatID, "candidatId", maxStringInputLength); err != nil {
		return nil, err
	}
	candidat, err := s.readCandidat(ctx, candidatID)
	if err != nil {
		return nil, fmt.Errorf("GetCandidatById: %w", err)
	}
	return candidat, nil
}

// GetAllCandidatsByArea returns the candidates standing in an area.
func (s *ElectionSmartContract) GetAllCandidatsByArea(ctx contractapi.TransactionContextInterface, areaID string) ([]*model.Candidat, error) {
	logger.Debugf("GetAllCandidatsByArea: '%s'", areaID)
	if err := s.validateRequiredString(areaID, "areaId", maxStringInputLength); err != nil {
		return nil, err
	}
	candidats, err := s.queryCandidats(ctx, map[string]interface{}{"areaId": areaID})
	if err != nil {
		return nil, fmt.Errorf("GetAllCandidatsByArea: %w", err)
	}
	return candidats, nil
}

// GetAllCandidatsByAreaAndElection narrows the area listing to one election.
func (s *ElectionSmartContract) GetAllCandidatsByAreaAndElection(ctx contractapi.TransactionContextInterface, areaID, electionID string) ([]*model.Candidat, error) {
	logger.Debugf("GetAllCandidatsByAreaAndElection: area '%s', election '%s'", areaID, electionID)
	if err := s.validateRequiredString(areaID, "areaId", maxStringInputLength); err != nil {
		return nil, err
	}
	if err := s.validateRequiredString(electionID, "electionId", maxStringInputLength); err != nil {
		return nil, err
	}
	candidats, err := s.queryCandidats(ctx, map[string]interface{}{
		"areaId":     areaID,
		"electionId": electionID,
	})
	if err != nil {
		return nil, fmt.Errorf("GetAllCandidatsByAreaAndElection: %w", err)
	}
	return candidats, nil
}
