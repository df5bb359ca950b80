package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// CreateAdjustmentFromRequest adapta el request HTTP al caso de uso Create.
func (uc *AdjustmentUseCase) CreateAdjustmentFromRequest(ctx context.Context, userID string, in dto.AdjustmentRequest) (*entity.InventoryAdjustment, error) {
	input, err := adjustmentInputFromRequest(in)
	if err != nil {
		return nil, err
	}
	return uc.Create(ctx, userID, input)
}

// UpdateAdjustmentFromRequest adapta el request HTTP al caso de uso Update.
func (uc *AdjustmentUseCase) UpdateAdjustmentFromRequest(ctx context.Context, userID, id string, in dto.AdjustmentRequest) (*entity.InventoryAdjustment, error) {
	input, err := adjustmentInputFromRequest(in)
	if err != nil {
		return nil, err
	}
	return uc.Update(ctx, userID, id, input)
}

// KitInputFromRequest adapta el request HTTP a KitInput.
func KitInputFromRequest(in dto.KitRequest) KitInput {
	items := make([]KitItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, KitItemInput{PartID: it.PartID, Quantity: it.Quantity})
	}
	return KitInput{
		KitNo:       in.KitNo,
		Name:        in.Name,
		Description: in.Description,
		MarkupPct:   in.MarkupPct,
		Status:      strings.ToUpper(strings.TrimSpace(in.Status)),
		Items:       items,
	}
}

func adjustmentInputFromRequest(in dto.AdjustmentRequest) (AdjustmentInput, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return AdjustmentInput{}, err
	}
	items := make([]AdjustmentItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, AdjustmentItemInput{
			PartID:           it.PartID,
			PartNo:           it.PartNo,
			Description:      it.Description,
			PreviousQuantity: it.PreviousQuantity,
			AdjustedQuantity: it.AdjustedQuantity,
			Reason:           it.Reason,
		})
	}
	return AdjustmentInput{
		AdjustmentNo: in.AdjustmentNo,
		Total:        in.Total,
		Date:         date,
		Notes:        in.Notes,
		Items:        items,
	}, nil
}

// parseDate acepta fecha simple (2006-01-02) o RFC3339.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: la fecha es obligatoria", domain.ErrInvalidInput)
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}
