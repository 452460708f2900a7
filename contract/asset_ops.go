package contract

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Generic Asset Utilities ---

// MyAssetExists reports whether any state is stored under the key.
func (s *ElectionSmartContract) MyAssetExists(ctx contractapi.TransactionContextInterface, myAssetID string) (bool, error) {
	data, err := ctx.GetStub().GetState(myAssetID)
	if err != nil {
		return false, fmt.Errorf("failed to read key '%s' from ledger: %w", myAssetID, err)
	}
	return len(data) > 0, nil
}

// ReadMyAsset returns the record stored under the key as a generic object.
// A missing key is not an error here: callers get a queryable marker object
// with an "error" field instead, preserving the existing contract.
func (s *ElectionSmartContract) ReadMyAsset(ctx contractapi.TransactionContextInterface, myAssetID string) (map[string]interface{}, error) {
	logger.Debugf("ReadMyAsset: '%s'", myAssetID)
	if err := s.validateRequiredString(myAssetID, "myAssetId", maxStringInputLength); err != nil {
		return nil, err
	}
	data, err := ctx.GetStub().GetState(myAssetID)
	if err != nil {
		return nil, fmt.Errorf("ReadMyAsset: failed to read key '%s' from ledger: %w", myAssetID, err)
	}
	if len(data) == 0 {
		return map[string]interface{}{
			"error": fmt.Sprintf("The my asset %s does not exist", myAssetID),
		}, nil
	}
	var asset map[string]interface{}
	if err := json.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("%w: asset '%s': %v", ErrMalformedRecord, myAssetID, err)
	}
	return asset, nil
}

// DeleteState unconditionally removes the key. Administrative cleanup only;
// no lifecycle transaction deletes state.
func (s *ElectionSmartContract) DeleteState(ctx contractapi.TransactionContextInterface, key string) (string, error) {
	logger.Infof("DeleteState: '%s'", key)
	if err := s.validateRequiredString(key, "key", maxStringInputLength); err != nil {
		return "", err
	}
	if err := ctx.GetStub().DelState(key); err != nil {
		return "", fmt.Errorf("DeleteState: failed to delete key '%s': %w", key, err)
	}
	return fmt.Sprintf("state under key '%s' has been deleted", key), nil
}
