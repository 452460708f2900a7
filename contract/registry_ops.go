package contract

import (
	"fmt"

	"evote/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Party / Area Registries ---

// CreateArea records a voting district.
func (s *ElectionSmartContract) CreateArea(ctx contractapi.TransactionContextInterface, name string) (*model.Area, error) {
	logger.Infof("CreateArea: '%s'", name)
	if err := s.validateRequiredString(name, "name", maxStringInputLength); err != nil {
		return nil, err
	}
	area := model.NewArea(name)
	if err := s.putEntity(ctx, area.ID, area); err != nil {
		return nil, fmt.Errorf("CreateArea: %w", err)
	}
	return area, nil
}

// CreateParti records a political party.
func (s *ElectionSmartContract) CreateParti(ctx contractapi.TransactionContextInterface, name string) (*model.Parti, error) {
	logger.Infof("CreateParti: '%s'", name)
	if err := s.validateRequiredString(name, "name", maxStringInputLength); err != nil {
		return nil, err
	}
	parti := model.NewParti(name)
	if err := s.putEntity(ctx, parti.ID, parti); err != nil {
		return nil, fmt.Errorf("CreateParti: %w", err)
	}
	return parti, nil
}
