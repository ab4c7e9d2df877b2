package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"footy_server/models"
)

// tableKeys maps each table to its primary key attribute.
var tableKeys = map[string]string{
	models.MatchesTable:     "matchId",
	models.UsersTable:       "userId",
	models.PostsTable:       "postId",
	models.WellnessTable:    "wellnessId",
	models.InjuriesTable:    "injuryId",
	models.CoachingTable:    "coachingId",
	models.PerformanceTable: "performanceId",
}

// DynamoStore implements DocumentStore on top of DynamoDB. Guarded pushes
// map to a conditional UpdateItem and pulls map to index-based REMOVE
// clauses, so roster mutations never rewrite whole arrays.
type DynamoStore struct {
	Dynamo *DynamoService
}

func NewDynamoStore(dynamo *DynamoService) *DynamoStore {
	return &DynamoStore{Dynamo: dynamo}
}

func (s *DynamoStore) key(table, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		tableKeys[table]: &types.AttributeValueMemberS{Value: id},
	}
}

func (s *DynamoStore) FindByID(ctx context.Context, table, id string, out interface{}) error {
	item, err := s.Dynamo.GetItem(ctx, table, s.key(table, id))
	if err != nil {
		return err
	}
	if err := attributevalue.UnmarshalMap(item, out); err != nil {
		return fmt.Errorf("failed to unmarshal item from table '%s': %w", table, err)
	}
	return nil
}

func (s *DynamoStore) FindMany(ctx context.Context, table string, q Query, out interface{}) (int, error) {
	var exprParts []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	for field, value := range q.Filter.Equals {
		names["#"+field] = field
		values[":"+field] = &types.AttributeValueMemberS{Value: value}
		exprParts = append(exprParts, fmt.Sprintf("#%s = :%s", field, field))
	}
	for field, value := range q.Filter.Contains {
		names["#"+field] = field
		values[":"+field] = &types.AttributeValueMemberS{Value: value}
		exprParts = append(exprParts, fmt.Sprintf("contains(#%s, :%s)", field, field))
	}

	filterExpression := strings.Join(exprParts, " AND ")
	if filterExpression == "" {
		names = nil
		values = nil
	}

	items, err := s.Dynamo.ScanItems(ctx, table, filterExpression, values, names)
	if err != nil {
		return 0, err
	}

	if q.SortDesc != "" {
		sortItemsDesc(items, q.SortDesc)
	}

	total := len(items)
	items = pageItems(items, q.Skip, q.Limit)

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return 0, fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return total, nil
}

func (s *DynamoStore) Insert(ctx context.Context, table, id string, doc interface{}) error {
	return s.Dynamo.PutItem(ctx, table, doc)
}

func (s *DynamoStore) Delete(ctx context.Context, table, id string) error {
	return s.Dynamo.DeleteItem(ctx, table, s.key(table, id))
}

func (s *DynamoStore) UpdateFields(ctx context.Context, table, id string, u Update) error {
	if len(u.Pull) > 0 {
		// Pulls need current indexes; retry once if the item moved
		// between the read and the conditional REMOVE.
		err := s.applyUpdate(ctx, table, id, u)
		if err != nil && errors.Is(err, ErrGuardFailed) && u.Guard == nil {
			err = s.applyUpdate(ctx, table, id, u)
		}
		return err
	}
	return s.applyUpdate(ctx, table, id, u)
}

func (s *DynamoStore) applyUpdate(ctx context.Context, table, id string, u Update) error {
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	var setParts, removeParts, condParts []string

	for field, value := range u.Set {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal field '%s': %w", field, err)
		}
		names["#"+field] = field
		values[":"+field] = av
		setParts = append(setParts, fmt.Sprintf("#%s = :%s", field, field))
	}

	for field, value := range u.Push {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal pushed value for '%s': %w", field, err)
		}
		names["#"+field] = field
		values[":push_"+field] = &types.AttributeValueMemberL{Value: []types.AttributeValue{av}}
		values[":empty_"+field] = &types.AttributeValueMemberL{Value: []types.AttributeValue{}}
		setParts = append(setParts,
			fmt.Sprintf("#%s = list_append(if_not_exists(#%s, :empty_%s), :push_%s)", field, field, field, field))
	}

	if len(u.Pull) > 0 {
		item, err := s.Dynamo.GetItem(ctx, table, s.key(table, id))
		if err != nil {
			return err
		}
		for field, target := range u.Pull {
			idx, elemCond, elemValues := pullIndex(item, field, target)
			if idx < 0 {
				continue // absent element, removal is a no-op
			}
			names["#"+field] = field
			removeParts = append(removeParts, fmt.Sprintf("#%s[%d]", field, idx))
			// Guard the index against concurrent roster changes.
			condParts = append(condParts, elemCond(field, idx))
			for k, v := range elemValues {
				values[k] = v
			}
		}
	}

	if u.Guard != nil {
		g := u.Guard
		names["#guard"] = g.Field
		values[":guard_val"] = &types.AttributeValueMemberS{Value: g.NotContains}
		condParts = append(condParts, "NOT contains(#guard, :guard_val)")
		if g.MaxLen > 0 {
			values[":guard_max"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", g.MaxLen)}
			condParts = append(condParts, "size(#guard) < :guard_max")
		}
	}

	var exprParts []string
	if len(setParts) > 0 {
		exprParts = append(exprParts, "SET "+strings.Join(setParts, ", "))
	}
	if len(removeParts) > 0 {
		exprParts = append(exprParts, "REMOVE "+strings.Join(removeParts, ", "))
	}
	if len(exprParts) == 0 {
		return nil
	}

	err := s.Dynamo.UpdateItem(ctx, table, s.key(table, id),
		strings.Join(exprParts, " "), strings.Join(condParts, " AND "), values, names)
	if err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return ErrGuardFailed
		}
		return err
	}
	return nil
}

// pullIndex locates the element to remove and returns its index together
// with a condition-expression builder pinning that index to the expected
// value.
func pullIndex(item map[string]types.AttributeValue, field string, target interface{}) (int, func(string, int) string, map[string]types.AttributeValue) {
	listAttr, ok := item[field].(*types.AttributeValueMemberL)
	if !ok {
		return -1, nil, nil
	}

	switch t := target.(type) {
	case string:
		for i, elem := range listAttr.Value {
			if sv, ok := elem.(*types.AttributeValueMemberS); ok && sv.Value == t {
				values := map[string]types.AttributeValue{
					":pull_" + field: &types.AttributeValueMemberS{Value: t},
				}
				cond := func(f string, idx int) string {
					return fmt.Sprintf("#%s[%d] = :pull_%s", f, idx, f)
				}
				return i, cond, values
			}
		}
	case PullMatch:
		for i, elem := range listAttr.Value {
			mv, ok := elem.(*types.AttributeValueMemberM)
			if !ok {
				continue
			}
			if sv, ok := mv.Value[t.Field].(*types.AttributeValueMemberS); ok && sv.Value == t.Value {
				values := map[string]types.AttributeValue{
					":pull_" + field: &types.AttributeValueMemberS{Value: t.Value},
				}
				sub := t.Field
				cond := func(f string, idx int) string {
					return fmt.Sprintf("#%s[%d].%s = :pull_%s", f, idx, sub, f)
				}
				return i, cond, values
			}
		}
	}
	return -1, nil, nil
}

func sortItemsDesc(items []map[string]types.AttributeValue, field string) {
	sort.SliceStable(items, func(i, j int) bool {
		return itemString(items[i], field) > itemString(items[j], field)
	})
}

func itemString(item map[string]types.AttributeValue, field string) string {
	if sv, ok := item[field].(*types.AttributeValueMemberS); ok {
		return sv.Value
	}
	return ""
}

func pageItems(items []map[string]types.AttributeValue, skip, limit int) []map[string]types.AttributeValue {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
