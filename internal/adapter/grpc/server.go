package grpc

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ranjan-27/SmartLog/internal/adapter/notify"
	"github.com/ranjan-27/SmartLog/internal/domain"
	"github.com/ranjan-27/SmartLog/internal/usecase/entry"
	"github.com/ranjan-27/SmartLog/internal/usecase/summary"
)

var (
	errSessionNotFound = errors.New("form session not found")
	errInvalidArgument = errors.New("invalid argument")
)

// Store is what the server needs from the transaction store
type Store interface {
	domain.TransactionRepository
	domain.TransactionReader
}

// session is one open entry form
type session struct {
	controller *entry.Controller
	recorder   *notify.Recorder
	lastSeen   time.Time // guarded by Server.mu
}

// Server implements EntryFormServiceServer.
// Each OpenForm call without a session_id starts a session with its own controller.
// Sessions end when their delayed close completes or when ExpireIdle finds them unused.
type Server struct {
	Store          Store
	SummaryService *summary.Service

	options []entry.Option
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// NewServer creates a new gRPC server instance.
// opts are applied to every session's controller.
func NewServer(store Store, summaryService *summary.Service, logger *zap.Logger, opts ...entry.Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Store:          store,
		SummaryService: summaryService,
		options:        opts,
		logger:         logger,
		now:            time.Now,
		sessions:       make(map[uuid.UUID]*session),
	}
}

// OpenForm handles the OpenForm RPC
func (s *Server) OpenForm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	mode := entry.Mode(stringField(req, "mode"))
	if mode == "" {
		mode = entry.ModeCreate
	}

	var existing *domain.Transaction
	if mode == entry.ModeEdit {
		id, err := transactionIDField(req, "transaction_id")
		if err != nil {
			return nil, mapError(err)
		}
		existing, err = s.Store.GetByID(ctx, id)
		if err != nil {
			return nil, mapError(err)
		}
	}

	id, sess, err := s.sessionFor(req)
	if err != nil {
		return nil, mapError(err)
	}

	if err := sess.controller.Open(mode, existing); err != nil {
		if _, ok := optionalSessionID(req); !ok {
			s.removeSession(id)
		}
		return nil, mapError(err)
	}

	return s.respond(id, sess, nil)
}

// UpdateField handles the UpdateField RPC
func (s *Server) UpdateField(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, sess, err := s.lookup(req)
	if err != nil {
		return nil, mapError(err)
	}

	field, ok := domain.ParseField(stringField(req, "field"))
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown field %q", stringField(req, "field"))
	}

	if err := sess.controller.UpdateField(field, stringField(req, "value")); err != nil {
		return nil, mapError(err)
	}

	return s.respond(id, sess, nil)
}

// SelectSuggestion handles the SelectSuggestion RPC
func (s *Server) SelectSuggestion(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, sess, err := s.lookup(req)
	if err != nil {
		return nil, mapError(err)
	}

	sess.controller.SelectSuggestion(stringField(req, "value"))
	return s.respond(id, sess, nil)
}

// FocusCategory handles the FocusCategory RPC
func (s *Server) FocusCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, sess, err := s.lookup(req)
	if err != nil {
		return nil, mapError(err)
	}

	sess.controller.FocusCategory()
	return s.respond(id, sess, nil)
}

// BlurCategory handles the BlurCategory RPC
func (s *Server) BlurCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, sess, err := s.lookup(req)
	if err != nil {
		return nil, mapError(err)
	}

	sess.controller.BlurCategory()
	return s.respond(id, sess, nil)
}

// Validate handles the Validate RPC. An invalid draft is not an RPC error.
func (s *Server) Validate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, sess, err := s.lookup(req)
	if err != nil {
		return nil, mapError(err)
	}

	valid, _ := sess.controller.Validate()
	return s.respond(id, sess, map[string]interface{}{"valid": valid})
}

// Submit handles the Submit RPC
func (s *Server) Submit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, sess, err := s.lookup(req)
	if err != nil {
		return nil, mapError(err)
	}

	tx, err := sess.controller.Submit(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return s.respond(id, sess, map[string]interface{}{"transaction": transactionToMap(tx)})
}

// CloseForm handles the CloseForm RPC
func (s *Server) CloseForm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, sess, err := s.lookup(req)
	if err != nil {
		return nil, mapError(err)
	}

	sess.controller.Close()
	return s.respond(id, sess, nil)
}

// GetForm handles the GetForm RPC
func (s *Server) GetForm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, sess, err := s.lookup(req)
	if err != nil {
		return nil, mapError(err)
	}

	return s.respond(id, sess, nil)
}

// ListTransactions handles the ListTransactions RPC
func (s *Server) ListTransactions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	txs, err := s.Store.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(txs))
	for _, tx := range txs {
		items = append(items, transactionToMap(tx))
	}

	return newStruct(map[string]interface{}{"transactions": items})
}

// GetSummary handles the GetSummary RPC
func (s *Server) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	result, err := s.SummaryService.GetSummary(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"income":  result.Income.String(),
		"expense": result.Expense.String(),
		"balance": result.Balance.String(),
		"count":   result.Count,
	})
}

// Shutdown discards every open session so pending closes never fire
func (s *Server) Shutdown() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.controller.Discard()
	}
}

// ExpireIdle discards every session not used for longer than maxIdle
// and returns how many were removed
func (s *Server) ExpireIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.controller.Discard()
	}
	if len(expired) > 0 {
		s.logger.Info("expired idle form sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// ScheduleExpiry registers ExpireIdle on c under the given cron spec
func (s *Server) ScheduleExpiry(c *cron.Cron, spec string, maxIdle time.Duration) (cron.EntryID, error) {
	return c.AddFunc(spec, func() { s.ExpireIdle(maxIdle) })
}

// SessionCount returns the number of open sessions
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sessionFor returns the session named in req, or starts a new one
func (s *Server) sessionFor(req *structpb.Struct) (uuid.UUID, *session, error) {
	if _, ok := optionalSessionID(req); ok {
		return s.lookup(req)
	}

	id := uuid.New()
	recorder := notify.NewRecorder()
	logger := s.logger.With(zap.String("session_id", id.String()))

	opts := append([]entry.Option{}, s.options...)
	opts = append(opts,
		entry.WithNotifier(notify.Multi{recorder, notify.NewLogger(logger)}),
		entry.WithLogger(logger),
		entry.OnDismiss(func() { s.removeSession(id) }),
	)

	sess := &session{
		controller: entry.NewController(s.Store, opts...),
		recorder:   recorder,
	}

	s.mu.Lock()
	sess.lastSeen = s.now()
	s.sessions[id] = sess
	s.mu.Unlock()

	return id, sess, nil
}

func (s *Server) lookup(req *structpb.Struct) (uuid.UUID, *session, error) {
	raw, ok := optionalSessionID(req)
	if !ok {
		return uuid.Nil, nil, errors.Join(errInvalidArgument, errors.New("session_id is required"))
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, nil, errors.Join(errInvalidArgument, err)
	}

	s.mu.Lock()
	sess, found := s.sessions[id]
	if found {
		sess.lastSeen = s.now()
	}
	s.mu.Unlock()

	if !found {
		return uuid.Nil, nil, errSessionNotFound
	}
	return id, sess, nil
}

func (s *Server) removeSession(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.logger.Debug("form session removed", zap.String("session_id", id.String()))
}

// respond builds the common form response: session ID, state and drained notifications
func (s *Server) respond(id uuid.UUID, sess *session, extra map[string]interface{}) (*structpb.Struct, error) {
	out := map[string]interface{}{
		"session_id":    id.String(),
		"state":         stateToMap(sess.controller.State()),
		"notifications": notificationsToList(sess.recorder.Drain()),
	}
	for k, v := range extra {
		out[k] = v
	}
	return newStruct(out)
}

func newStruct(m map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func optionalSessionID(req *structpb.Struct) (string, bool) {
	raw := stringField(req, "session_id")
	return raw, raw != ""
}

// transactionIDField accepts the ID as a decimal string or a whole number
func transactionIDField(req *structpb.Struct, key string) (domain.TransactionID, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, errors.Join(errInvalidArgument, errors.New(key+" is required"))
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		id, err := strconv.ParseInt(kind.StringValue, 10, 64)
		if err != nil || id <= 0 {
			return 0, errors.Join(errInvalidArgument, errors.New(key+" must be a positive integer"))
		}
		return domain.TransactionID(id), nil
	case *structpb.Value_NumberValue:
		id := int64(kind.NumberValue)
		if float64(id) != kind.NumberValue || id <= 0 {
			return 0, errors.Join(errInvalidArgument, errors.New(key+" must be a positive integer"))
		}
		return domain.TransactionID(id), nil
	}
	return 0, errors.Join(errInvalidArgument, errors.New(key+" must be a string or number"))
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var (
		verrs     domain.ValidationErrors
		commitErr *entry.CommitError
	)

	switch {
	case errors.As(err, &verrs):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &commitErr):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, errSessionNotFound), errors.Is(err, domain.ErrTransactionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, entry.ErrDiscarded):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, errInvalidArgument),
		errors.Is(err, entry.ErrUnknownField),
		errors.Is(err, entry.ErrUnknownMode),
		errors.Is(err, entry.ErrNoEditTarget),
		errors.Is(err, domain.ErrUnknownType):
		return status.Error(codes.InvalidArgument, err.Error())
	}

	return status.Errorf(codes.Internal, "internal error: %v", err)
}
