package codec

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/inference"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/metrics"
	"github.com/Sarah111-AHM/DSAI-3302-Expert-System/internal/neurofuzzy"
)

// #region server-struct
// Server implements DiagnoserServer on top of an inference engine and an
// optional neuro-fuzzy model.
type Server struct {
	engine  *inference.Engine
	model   *neurofuzzy.Model
	logger  *zap.Logger
	metrics *metrics.Collectors
}

type ServerOption func(*Server)

func WithLogger(l *zap.Logger) ServerOption { return func(s *Server) { s.logger = l } }

func WithMetrics(c *metrics.Collectors) ServerOption { return func(s *Server) { s.metrics = c } }

// WithModel adds an adaptive score to every response.
func WithModel(m *neurofuzzy.Model) ServerOption { return func(s *Server) { s.model = m } }

// NewServer returns a Server diagnosing with engine.
func NewServer(engine *inference.Engine, opts ...ServerOption) *Server {
	s := &Server{engine: engine, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// #endregion server-struct

// #region diagnose-handler
func (s *Server) Diagnose(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	m, err := DecodeMeasurement(req)
	if err != nil {
		s.metrics.DiagnoseFailed()
		s.logger.Debug("rejected diagnose request", zap.Error(err))
		return nil, status.Errorf(codes.InvalidArgument, "decode measurement: %v", err)
	}

	d := s.engine.Diagnose(m)

	var adaptive *float64
	if s.model != nil {
		p, err := s.model.Predict(m)
		if err != nil {
			s.metrics.DiagnoseFailed()
			s.logger.Error("adaptive prediction failed", zap.Error(err))
			return nil, status.Errorf(codes.FailedPrecondition, "adaptive predict: %v", err)
		}
		adaptive = &p
	}

	s.metrics.DiagnoseServed()
	s.logger.Debug("diagnosed",
		zap.Stringer("measurement", m),
		zap.Float64("mamdani", d.Mamdani),
		zap.Float64("sugeno", d.Sugeno))
	return encodeResult(d, adaptive), nil
}

// #endregion diagnose-handler
