package schedule

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barberia-web/internal/domain/schedule"
	"github.com/BruksfildServices01/barberia-web/internal/dto"
	"github.com/BruksfildServices01/barberia-web/internal/httperr"
)

// ======================================================
// SESSÃO DA GRADE
// ======================================================

// GridSession é a dona do estado da grade durante uma sessão de
// visualização: janela semanal, dados da semana, seleção em staging e o
// último erro de fetch. Uma sessão, um dono — ninguém mais mexe nela.
// A superfície HTTP é stateless e remonta a grade por requisição; a
// sessão atende consumidores que mantêm a grade viva entre interações
// (um canal com estado por conexão).
//
// Regras de concorrência:
//   - fetches da semana são supersedidos por identidade de pedido: navegar
//     de novo cancela o fetch anterior e respostas atrasadas são
//     descartadas (nunca last-write-wins por ordem de chegada);
//   - mutações (publicar, reservar) são serializadas: com uma em voo, a
//     próxima é recusada, não enfileirada;
//   - falha de fetch preserva a última semana boa (grade obsoleta visível
//     é melhor que grade em branco).
type GridSession struct {
	mu sync.Mutex

	remote domain.Remote
	role   domain.Role
	userID string

	barberID string
	anchor   time.Time
	weekday  string

	weekly    domain.WeeklyAvailability
	selection *domain.SelectionSet
	lastErr   error

	fetchGen    uint64
	cancelFetch context.CancelFunc
	mutating    bool

	now func() time.Time
}

func NewGridSession(
	remote domain.Remote,
	role domain.Role,
	userID string,
	barberID string,
	loc *time.Location,
) *GridSession {

	now := func() time.Time { return time.Now().In(loc) }
	return &GridSession{
		remote:    remote,
		role:      role,
		userID:    userID,
		barberID:  barberID,
		anchor:    now(),
		selection: domain.NewSelectionSet(),
		now:       now,
	}
}

// ------------------------------------------------------
// Navegação e fetch
// ------------------------------------------------------

// Refresh busca a semana corrente. Se outro Refresh começar enquanto este
// está em voo, este vira obsoleto: o contexto é cancelado e, mesmo que a
// resposta chegue, ela não toca no estado.
func (s *GridSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	fctx, cancel := context.WithCancel(ctx)
	s.cancelFetch = cancel
	barberID := s.barberID
	start := domain.WeekStart(s.anchor)
	end := domain.WeekEnd(s.anchor)
	s.mu.Unlock()

	weekly, err := s.remote.WeeklyAvailability(fctx, barberID, start, end)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.fetchGen {
		// resposta de um pedido superado: descarta
		return nil
	}

	if err != nil {
		// mantém a última semana boa na tela
		s.lastErr = err
		return err
	}

	s.weekly = weekly
	s.lastErr = nil
	return nil
}

func (s *GridSession) NextWeek(ctx context.Context) error {
	s.mu.Lock()
	s.anchor = domain.NextWeekAnchor(s.anchor)
	s.mu.Unlock()
	return s.Refresh(ctx)
}

func (s *GridSession) PrevWeek(ctx context.Context) error {
	s.mu.Lock()
	s.anchor = domain.PrevWeekAnchor(s.anchor)
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SelectBarber troca o barbeiro exibido (cliente/admin). A seleção em
// staging morre junto com a troca.
func (s *GridSession) SelectBarber(ctx context.Context, barberID string) error {
	s.mu.Lock()
	if s.barberID != barberID {
		s.barberID = barberID
		s.selection.Clear()
	}
	s.mu.Unlock()
	return s.Refresh(ctx)
}

func (s *GridSession) SetWeekdayFilter(weekday string) {
	s.mu.Lock()
	s.weekday = weekday
	s.mu.Unlock()
}

// ------------------------------------------------------
// Seleção (barbeiro)
// ------------------------------------------------------

// ToggleSelection aplica o clique do barbeiro. Só células available ou
// selected mudam a seleção; qualquer outra é no-op. Devolve true quando a
// seleção mudou.
func (s *GridSession) ToggleSelection(date, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.role.CanPublish() {
		return false
	}
	return domain.ToggleSelection(s.selection, s.weekly, date, label, s.now())
}

func (s *GridSession) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Len()
}

// ------------------------------------------------------
// Mutações (serializadas)
// ------------------------------------------------------

// Publish envia a seleção em um único lote. Com outra mutação em voo o
// pedido é recusado na hora, sem fila.
func (s *GridSession) Publish(ctx context.Context) error {
	if err := s.beginMutation(); err != nil {
		return err
	}
	defer s.endMutation()

	s.mu.Lock()
	if !s.role.CanPublish() {
		s.mu.Unlock()
		return httperr.ErrBusiness("role_not_allowed")
	}
	// snapshot sob o lock: o lote sai fechado daqui e toggles durante o
	// voo não entram nele nem correm contra ele
	uc := NewPublishAvailability(s.remote)
	in := PublishAvailabilityInput{
		BarberID: s.barberID,
		Days:     s.selection.GroupByDate(),
		Anchor:   s.anchor,
	}
	s.mu.Unlock()

	refreshed, err := uc.Execute(ctx, in)
	if err != nil {
		// seleção fica intacta para retry
		return err
	}

	s.mu.Lock()
	s.selection.Clear()
	s.weekly = refreshed
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Book pede a reserva de uma célula para o cliente da sessão.
func (s *GridSession) Book(ctx context.Context, date, label, service string) (*BookingConfirmation, error) {
	if err := s.beginMutation(); err != nil {
		return nil, err
	}
	defer s.endMutation()

	s.mu.Lock()
	if !s.role.CanBook() {
		s.mu.Unlock()
		return nil, httperr.ErrBusiness("role_not_allowed")
	}
	uc := NewRequestBooking(s.remote)
	in := RequestBookingInput{
		ClientID: s.userID,
		BarberID: s.barberID,
		Date:     date,
		Time:     label,
		Service:  service,
		Now:      s.now(),
	}
	s.mu.Unlock()

	conf, err := uc.Execute(ctx, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.weekly = conf.Weekly
	s.lastErr = nil
	s.mu.Unlock()
	return conf, nil
}

func (s *GridSession) beginMutation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mutating {
		return httperr.ErrBusiness("operation_in_flight")
	}
	s.mutating = true
	return nil
}

func (s *GridSession) endMutation() {
	s.mu.Lock()
	s.mutating = false
	s.mu.Unlock()
}

// ------------------------------------------------------
// Leitura
// ------------------------------------------------------

// Grid materializa a grade corrente (dados possivelmente obsoletos após
// uma falha de fetch; ver Err).
func (s *GridSession) Grid() *dto.WeeklyGridDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	return BuildGrid(GetWeeklyGridInput{
		BarberID:  s.barberID,
		Anchor:    s.anchor,
		Weekday:   s.weekday,
		Selection: s.selection,
		Now:       s.now(),
	}, s.weekly)
}

func (s *GridSession) Classify(date, label string) domain.SlotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Classify(date, label, s.weekly, s.selection, s.now())
}

func (s *GridSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *GridSession) Anchor() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchor
}
