package till

import (
	"context"

	"kantinho-pos/internal/checkout"
	"kantinho-pos/internal/domain"
	"kantinho-pos/internal/halfhalf"
)

// HalfFlowView describes the state of the half-and-half selection.
type HalfFlowView struct {
	Active     bool           `json:"active"`
	State      halfhalf.State `json:"state,omitempty"`
	Size       domain.Size    `json:"size,omitempty"`
	FirstHalf  string         `json:"firstHalf,omitempty"`
	SecondHalf string         `json:"secondHalf,omitempty"`
}

// StartHalfAndHalf opens a selection flow for the given size, replacing any
// flow already in progress.
func (s *Service) StartHalfAndHalf(size domain.Size) (HalfFlowView, error) {
	if !domain.ValidSize(size) {
		return HalfFlowView{}, ErrSizeRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer = halfhalf.New(size)
	return s.halfView(), nil
}

// ChooseHalf records a pizza for the current step of the flow.
func (s *Service) ChooseHalf(ctx context.Context, menuItemID string) (HalfFlowView, error) {
	item, err := s.sellable(ctx, menuItemID)
	if err != nil {
		return HalfFlowView{}, err
	}
	if item.Kind != domain.KindPizza {
		return HalfFlowView{}, domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.composer == nil {
		return HalfFlowView{}, ErrNoHalfFlow
	}
	s.composer.Choose(*item)
	return s.halfView(), nil
}

// BackHalf steps the flow backwards: from the second step it discards both
// halves and returns to the first; from the first step it cancels the flow.
func (s *Service) BackHalf() HalfFlowView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.composer == nil {
		return s.halfView()
	}
	if s.composer.State() == halfhalf.SelectingSecond {
		s.composer.Back()
	} else {
		s.composer = nil
	}
	return s.halfView()
}

// CancelHalf aborts the flow with no side effects.
func (s *Service) CancelHalf() HalfFlowView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer = nil
	return s.halfView()
}

// ConfirmHalf emits the composed pizza into the cart and closes the flow.
func (s *Service) ConfirmHalf() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.composer == nil {
		return View{}, ErrNoHalfFlow
	}
	cand, err := s.composer.Confirm()
	if err != nil {
		return View{}, err
	}
	s.composer = nil
	s.cart.AddItem(cand)
	return s.view(checkout.VariantInvoice), nil
}

// HalfFlow returns the current flow state.
func (s *Service) HalfFlow() HalfFlowView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.halfView()
}

func (s *Service) halfView() HalfFlowView {
	if s.composer == nil {
		return HalfFlowView{}
	}
	v := HalfFlowView{
		Active: true,
		State:  s.composer.State(),
		Size:   s.composer.Size(),
	}
	if first := s.composer.FirstHalf(); first != nil {
		v.FirstHalf = first.Name
	}
	if second := s.composer.SecondHalf(); second != nil {
		v.SecondHalf = second.Name
	}
	return v
}
