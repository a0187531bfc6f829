package grpc

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/litetable/litetable-sheet/internal/replica"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"time"
)

type replicaService struct {
	replica replicaManager
	streams *streams
}

func (r *replicaService) validatePush(msg *PushRequest) error {
	var errGrp []error
	if len(msg.Updates) == 0 {
		errGrp = append(errGrp, status.Errorf(codes.InvalidArgument, "updates required"))
	}
	for i, u := range msg.Updates {
		if u.Op == nil {
			errGrp = append(errGrp, status.Errorf(codes.InvalidArgument, "update %d has no operation", i))
		}
	}
	return errors.Join(errGrp...)
}

// Push applies updates produced by another replica.
func (r *replicaService) Push(ctx context.Context, msg *PushRequest) (*PushResponse, error) {
	start := time.Now()
	if err := r.validatePush(msg); err != nil {
		return nil, err
	}

	applied, err := r.replica.Apply(msg.Updates)
	if err != nil {
		if errors.Is(err, replica.ErrInvalidUpdate) {
			return nil, status.Errorf(codes.InvalidArgument, "failed to apply updates: %v", err)
		}
		return nil, status.Errorf(codes.Internal, "failed to apply updates: %v", err)
	}

	log.Debug().Msgf("Push applied %d updates in %v", applied, time.Since(start))
	return &PushResponse{Applied: applied}, nil
}

// Subscribe streams every update the replica applies until the client goes away.
func (r *replicaService) Subscribe(msg *SubscribeRequest, stream grpc2.ServerStreamingServer[table.Update]) error {
	id := msg.ClientID
	if id == "" {
		id = uuid.NewString()
	}

	sub, err := r.streams.register(id)
	if errors.Is(err, errShuttingDown) {
		return status.Errorf(codes.Unavailable, "%v", err)
	}
	if err != nil {
		return status.Errorf(codes.AlreadyExists, "%v", err)
	}
	defer r.streams.unregister(sub)

	log.Info().Str("client", id).Msg("replica subscriber connected")

	for {
		select {
		case <-stream.Context().Done():
			log.Info().Str("client", id).Msg("replica subscriber disconnected")
			return nil
		case <-r.streams.closed:
			return status.Errorf(codes.Unavailable, "%v", errShuttingDown)
		case <-sub.dropped:
			return status.Errorf(codes.ResourceExhausted, "subscriber %s fell behind", id)
		case u := <-sub.updates:
			if err := stream.Send(&u); err != nil {
				log.Warn().Err(err).Str("client", id).Msg("removing subscriber due to send error")
				return err
			}
		}
	}
}
