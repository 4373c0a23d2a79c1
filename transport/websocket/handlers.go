package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/1-abesh-1/chess-multiplayer/internal/apperror"
)

func (that *Server) handleCreateRoom(ctx context.Context, client *Client, msg *Message) error {
	log := that.logger.With("method", "handleCreateRoom", "connID", client.ID)

	var payload CreateRoomPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.RoomID == "" {
		log.Warn("roomId is missing in payload")
		return nil
	}

	outcome, err := that.manager.CreateOrJoin(ctx, payload.RoomID, client.ID, payload.Color)
	if errors.Is(err, apperror.ErrRoomFull) {
		return that.sendNotice(client, actionRoomFull)
	}

	if err != nil {
		log.Error("failed to create or join room", "roomID", payload.RoomID, "error", err)
		return nil
	}

	log.Info("seat assigned", "roomID", payload.RoomID, "color", outcome.Color, "created", outcome.Created)

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, client *Client, msg *Message) error {
	log := that.logger.With("method", "handleJoinRoom", "connID", client.ID)

	var payload JoinRoomPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	outcome, err := that.manager.JoinAnyOpenSeat(ctx, payload.RoomID, client.ID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return that.sendNotice(client, actionRoomNotFound)
	}

	if errors.Is(err, apperror.ErrRoomFull) {
		return that.sendNotice(client, actionRoomFull)
	}

	if err != nil {
		log.Error("failed to join room", "roomID", payload.RoomID, "error", err)
		return nil
	}

	log.Info("seat assigned", "roomID", payload.RoomID, "color", outcome.Color, "ready", outcome.Ready)

	return nil
}

func (that *Server) handleJoinAsSpectator(ctx context.Context, client *Client, msg *Message) error {
	log := that.logger.With("method", "handleJoinAsSpectator", "connID", client.ID)

	var payload JoinRoomPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	err := that.manager.JoinAsSpectator(ctx, payload.RoomID, client.ID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return that.sendNotice(client, actionRoomNotFound)
	}

	if err != nil {
		log.Error("failed to join as spectator", "roomID", payload.RoomID, "error", err)
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, client *Client, msg *Message) error {
	log := that.logger.With("method", "handleMove", "connID", client.ID)

	var payload MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	record, err := that.manager.ApplyMove(ctx, payload.RoomID, client.ID, payload.Move)
	if errors.Is(err, apperror.ErrIllegalMove) {
		return that.sendNotice(client, actionInvalidMove)
	}

	if errors.Is(err, apperror.ErrUnknownRoom) {
		// Mirrors the relay contract: a move for a room that does not
		// exist is dropped rather than answered.
		log.Warn("move for unknown room", "roomID", payload.RoomID)
		return nil
	}

	if err != nil {
		log.Error("failed to apply move", "roomID", payload.RoomID, "error", err)
		return nil
	}

	log.Info("move relayed", "roomID", payload.RoomID, "san", record.SAN)

	return nil
}

func (that *Server) handleThemeChange(ctx context.Context, client *Client, msg *Message) error {
	var payload ThemePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.manager.RelayTheme(ctx, payload.RoomID, client.ID, payload.Theme)

	return nil
}
