package services

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryStore is the in-memory DocumentStore backend. It keeps documents in
// the same attribute-value form the DynamoDB backend reads and writes, so
// the two backends stay behaviorally interchangeable. Used by the test
// suite and for running the server locally without AWS credentials.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]map[string]types.AttributeValue
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]map[string]map[string]types.AttributeValue)}
}

func (s *MemoryStore) table(name string) map[string]map[string]types.AttributeValue {
	t, ok := s.tables[name]
	if !ok {
		t = make(map[string]map[string]types.AttributeValue)
		s.tables[name] = t
	}
	return t
}

func (s *MemoryStore) FindByID(ctx context.Context, table, id string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.tables[table][id]
	if !ok {
		return ErrItemNotFound
	}
	return attributevalue.UnmarshalMap(item, out)
}

func (s *MemoryStore) FindMany(ctx context.Context, table string, q Query, out interface{}) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []map[string]types.AttributeValue
	for _, item := range s.tables[table] {
		if matchesFilter(item, q.Filter) {
			items = append(items, item)
		}
	}

	if q.SortDesc != "" {
		sortItemsDesc(items, q.SortDesc)
	}
	total := len(items)
	items = pageItems(items, q.Skip, q.Limit)

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *MemoryStore) Insert(ctx context.Context, table, id string, doc interface{}) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.table(table)[id] = item
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.table(table), id)
	return nil
}

func (s *MemoryStore) UpdateFields(ctx context.Context, table, id string, u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.tables[table][id]
	if !ok {
		return ErrItemNotFound
	}

	// The guard is checked under the same lock that applies the write, which
	// mirrors the atomic conditional update of the DynamoDB backend.
	if u.Guard != nil {
		if listContains(item, u.Guard.Field, u.Guard.NotContains) {
			return ErrGuardFailed
		}
		if u.Guard.MaxLen > 0 && listLen(item, u.Guard.Field) >= u.Guard.MaxLen {
			return ErrGuardFailed
		}
	}

	for field, value := range u.Set {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		item[field] = av
	}

	for field, value := range u.Push {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		list, _ := item[field].(*types.AttributeValueMemberL)
		if list == nil {
			list = &types.AttributeValueMemberL{}
		}
		item[field] = &types.AttributeValueMemberL{Value: append(list.Value, av)}
	}

	for field, target := range u.Pull {
		idx, _, _ := pullIndex(item, field, target)
		if idx < 0 {
			continue
		}
		list := item[field].(*types.AttributeValueMemberL)
		next := make([]types.AttributeValue, 0, len(list.Value)-1)
		next = append(next, list.Value[:idx]...)
		next = append(next, list.Value[idx+1:]...)
		item[field] = &types.AttributeValueMemberL{Value: next}
	}

	return nil
}

func matchesFilter(item map[string]types.AttributeValue, f Filter) bool {
	for field, value := range f.Equals {
		if itemString(item, field) != value {
			return false
		}
	}
	for field, value := range f.Contains {
		if !listContains(item, field, value) {
			return false
		}
	}
	return true
}

func listLen(item map[string]types.AttributeValue, field string) int {
	if list, ok := item[field].(*types.AttributeValueMemberL); ok {
		return len(list.Value)
	}
	return 0
}

func listContains(item map[string]types.AttributeValue, field, value string) bool {
	list, ok := item[field].(*types.AttributeValueMemberL)
	if !ok {
		return false
	}
	for _, elem := range list.Value {
		if sv, ok := elem.(*types.AttributeValueMemberS); ok && sv.Value == value {
			return true
		}
	}
	return false
}
