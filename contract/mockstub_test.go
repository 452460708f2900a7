package contract

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// mockStub backs the chaincode stub with an in-memory map and evaluates
// CouchDB-style equality selectors for rich queries. Only the methods the
// contract touches are implemented; anything else panics via the embedded
// nil interface, which is exactly what a test should do.
type mockStub struct {
	shim.ChaincodeStubInterface
	state  map[string][]byte
	events map[string][]byte
	txTime time.Time
}

func newMockStub() *mockStub {
	return &mockStub{
		state:  map[string][]byte{},
		events: map[string][]byte{},
		txTime: time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockStub) GetState(key string) ([]byte, error) {
	return m.state[key], nil
}

func (m *mockStub) PutState(key string, value []byte) error {
	m.state[key] = value
	return nil
}

func (m *mockStub) DelState(key string) error {
	delete(m.state, key)
	return nil
}

func (m *mockStub) GetTxTimestamp() (*timestamppb.Timestamp, error) {
	return timestamppb.New(m.txTime), nil
}

func (m *mockStub) SetEvent(name string, payload []byte) error {
	m.events[name] = payload
	return nil
}

func (m *mockStub) GetQueryResult(query string) (shim.StateQueryIteratorInterface, error) {
	var parsed struct {
		Selector map[string]interface{} `json:"selector"`
	}
	if err := json.Unmarshal([]byte(query), &parsed); err != nil {
		return nil, fmt.Errorf("bad query string: %w", err)
	}

	keys := make([]string, 0, len(m.state))
	for key := range m.state {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var kvs []*queryresult.KV
	for _, key := range keys {
		var record map[string]interface{}
		parseable := json.Unmarshal(m.state[key], &record) == nil
		// Unparseable state can still match the empty selector, which is how
		// the drain loop's corruption handling gets exercised.
		if (parseable && selectorMatches(parsed.Selector, record)) || (!parseable && len(parsed.Selector) == 0) {
			kvs = append(kvs, &queryresult.KV{Key: key, Value: m.state[key]})
		}
	}
	return &mockIterator{kvs: kvs}, nil
}

// selectorMatches applies the equality semantics of a CouchDB selector: every
// selector field must DeepEqual the record's field. Both sides come through
// encoding/json, so numbers compare as float64 on both.
func selectorMatches(selector, record map[string]interface{}) bool {
	for field, want := range selector {
		if !reflect.DeepEqual(record[field], want) {
			return false
		}
	}
	return true
}

type mockIterator struct {
	kvs    []*queryresult.KV
	pos    int
	closed bool
}

func (it *mockIterator) HasNext() bool {
	return it.pos < len(it.kvs)
}

func (it *mockIterator) Next() (*queryresult.KV, error) {
	kv := it.kvs[it.pos]
	it.pos++
	return kv, nil
}

func (it *mockIterator) Close() error {
	it.closed = true
	return nil
}

func newTestContext() (*contractapi.TransactionContext, *mockStub) {
	stub := newMockStub()
	ctx := &contractapi.TransactionContext{}
	ctx.SetStub(stub)
	return ctx, stub
}
