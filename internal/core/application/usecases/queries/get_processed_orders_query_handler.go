package queries

import (
	"context"

	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// GetProcessedOrdersQueryResponse is one listed order.
type GetProcessedOrdersQueryResponse struct {
	ports.ProcessedOrder
}

// GetProcessedOrdersQueryHandler reads through whichever repository adapter is
// configured.
type GetProcessedOrdersQueryHandler struct {
	reader ports.ProcessedOrderReader
}

func NewGetProcessedOrdersQueryHandler(reader ports.ProcessedOrderReader) (GetProcessedOrdersQueryHandler, error) {
	if reader == nil {
		return GetProcessedOrdersQueryHandler{}, errs.NewValueIsRequiredError("processed order reader")
	}
	return GetProcessedOrdersQueryHandler{reader: reader}, nil
}

func (h GetProcessedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetProcessedOrdersQuery,
) ([]GetProcessedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := h.reader.ListProcessed(ctx, query.Limit())
	if err != nil {
		return nil, err
	}

	response := make([]GetProcessedOrdersQueryResponse, 0, len(records))
	for _, r := range records {
		response = append(response, GetProcessedOrdersQueryResponse{ProcessedOrder: r})
	}
	return response, nil
}
