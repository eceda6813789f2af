package round

import (
	"context"
	"errors"

	apperrors "github.com/louisbranch/homerun/internal/platform/errors"
	"github.com/louisbranch/homerun/internal/platform/grpc/pagination"
	grpcmeta "github.com/louisbranch/homerun/internal/services/round/api/grpc/metadata"
	"github.com/louisbranch/homerun/internal/services/round/api/roundv1"
	"github.com/louisbranch/homerun/internal/services/round/core/filter"
	"github.com/louisbranch/homerun/internal/services/round/storage"
)

const (
	defaultEventPageSize = 50
	maxEventPageSize     = 200

	orderSeqAsc  = "seq"
	orderSeqDesc = "seq desc"
)

// ListRoundEvents pages the operation journal.
func (s *Service) ListRoundEvents(ctx context.Context, in *roundv1.ListRoundEventsRequest) (*roundv1.ListRoundEventsResponse, error) {
	locale := grpcmeta.AcceptLanguageFromContext(ctx)
	if in == nil {
		in = &roundv1.ListRoundEventsRequest{}
	}

	query, orderBy, err := normalizeListEventsRequest(in)
	if err != nil {
		return nil, apperrors.HandleError(err, locale)
	}

	pageSize := query.Limit
	query.Limit = pageSize + 1
	records, err := s.store.ListEvents(ctx, query)
	if err != nil {
		return nil, apperrors.HandleError(err, locale)
	}

	resp := &roundv1.ListRoundEventsResponse{Events: make([]*roundv1.RoundEvent, 0, min(len(records), pageSize))}
	if len(records) > pageSize {
		records = records[:pageSize]
		token, err := pagination.Encode(pagination.NewCursor(records[len(records)-1].Seq, in.Filter, orderBy))
		if err != nil {
			return nil, apperrors.HandleError(err, locale)
		}
		resp.NextPageToken = token
	}
	for _, record := range records {
		resp.Events = append(resp.Events, eventToProto(record))
	}
	return resp, nil
}

func normalizeListEventsRequest(in *roundv1.ListRoundEventsRequest) (storage.EventQuery, string, error) {
	orderBy, err := pagination.NormalizeOrderBy(in.OrderBy, pagination.OrderByConfig{
		Default: orderSeqAsc,
		Allowed: []string{orderSeqAsc, orderSeqDesc},
	})
	if err != nil {
		return storage.EventQuery{}, "", apperrors.WithMetadata(apperrors.CodeFilterInvalid, err.Error(), map[string]string{
			"Filter": "order_by " + in.OrderBy,
		})
	}

	condition, err := filter.ParseEventFilter(in.Filter)
	if err != nil {
		return storage.EventQuery{}, "", apperrors.WrapWithMetadata(apperrors.CodeFilterInvalid, "invalid filter", map[string]string{
			"Filter": in.Filter,
		}, err)
	}

	query := storage.EventQuery{
		Limit: pagination.ClampPageSize(in.PageSize, pagination.PageSizeConfig{
			Default: defaultEventPageSize,
			Max:     maxEventPageSize,
		}),
		Descending:   orderBy == orderSeqDesc,
		FilterClause: condition.Clause,
		FilterParams: condition.Params,
	}
	if in.PageToken != "" {
		cursor, err := pagination.DecodeFor(in.PageToken, in.Filter, orderBy)
		if err != nil {
			if errors.Is(err, pagination.ErrTokenMismatch) {
				return storage.EventQuery{}, "", apperrors.Wrap(apperrors.CodePageTokenInvalid, "page token was issued for another filter or order", err)
			}
			return storage.EventQuery{}, "", apperrors.Wrap(apperrors.CodePageTokenInvalid, "page token is malformed", err)
		}
		query.AfterSeq = cursor.Seq
	}
	return query, orderBy, nil
}
