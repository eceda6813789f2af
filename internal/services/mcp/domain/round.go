package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	grpcmeta "github.com/louisbranch/homerun/internal/services/round/api/grpc/metadata"
	"github.com/louisbranch/homerun/internal/services/round/api/roundv1"
)

// Identity is the caller the adapter acts as on the round service.
type Identity struct {
	Caller string
	Token  string
}

// RoundStatusInput takes no arguments.
type RoundStatusInput struct{}

// RoundStatusResult mirrors the round read model.
type RoundStatusResult struct {
	Initialized   bool   `json:"initialized" jsonschema:"whether the round record exists"`
	Paused        bool   `json:"paused" jsonschema:"whether plays and scores are suspended"`
	Admin         string `json:"admin" jsonschema:"identity allowed to pause, resume, profit and kill"`
	Winner        string `json:"winner,omitempty" jsonschema:"holder of the current high score"`
	Score         uint32 `json:"score" jsonschema:"current high score"`
	Deadline      int64  `json:"deadline" jsonschema:"unix seconds when play closes; zero when dormant"`
	GraceEndsAt   int64  `json:"grace_ends_at,omitempty" jsonschema:"unix seconds when the winner-only claim window ends"`
	Phase         string `json:"phase" jsonschema:"dormant, playing, grace_claim or open_claim"`
	Pool          uint64 `json:"pool" jsonschema:"prize pool"`
	Commission    uint64 `json:"commission" jsonschema:"accrued admin commission"`
	Custody       uint64 `json:"custody" jsonschema:"value held by the round account"`
	Fee           uint64 `json:"fee" jsonschema:"price of one play"`
	DurationSecs  int64  `json:"round_duration_seconds" jsonschema:"length of the playing and grace windows"`
	ObservedAtSec int64  `json:"now" jsonschema:"server clock reading used to derive the phase"`
}

// RoundStatusTool defines the MCP tool schema for reading the round.
func RoundStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "round_status",
		Description: "Returns the round record with its current phase, deadline and pool.",
	}
}

// RoundStatusHandler reads the round record.
func RoundStatusHandler(client roundv1.RoundServiceClient, identity Identity) mcp.ToolHandlerFor[RoundStatusInput, RoundStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ RoundStatusInput) (*mcp.CallToolResult, RoundStatusResult, error) {
		result, err := fetchRoundStatus(ctx, client, identity)
		if err != nil {
			return nil, RoundStatusResult{}, err
		}
		return nil, result, nil
	}
}

func fetchRoundStatus(ctx context.Context, client roundv1.RoundServiceClient, identity Identity) (RoundStatusResult, error) {
	if client == nil {
		return RoundStatusResult{}, fmt.Errorf("round client is not configured")
	}
	callCtx, cancel, err := newCallContext(ctx, identity)
	if err != nil {
		return RoundStatusResult{}, err
	}
	defer cancel()

	response, err := client.GetRound(callCtx, &roundv1.GetRoundRequest{})
	if err != nil {
		return RoundStatusResult{}, fmt.Errorf("round status failed: %w", err)
	}
	if response == nil || response.Round == nil {
		return RoundStatusResult{}, fmt.Errorf("round status response is missing")
	}
	round := response.Round
	return RoundStatusResult{
		Initialized:   round.Initialized,
		Paused:        round.Paused,
		Admin:         round.Admin,
		Winner:        round.Winner,
		Score:         round.Score,
		Deadline:      round.Deadline,
		GraceEndsAt:   round.GraceEndsAt,
		Phase:         round.Phase,
		Pool:          round.Pool,
		Commission:    round.Commission,
		Custody:       round.Custody,
		Fee:           round.Fee,
		DurationSecs:  round.RoundDurationSeconds,
		ObservedAtSec: round.Now,
	}, nil
}

// RoundEventsInput pages the operation journal.
type RoundEventsInput struct {
	PageSize  int32  `json:"page_size,omitempty" jsonschema:"maximum entries to return (default 50, max 200)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
	Filter    string `json:"filter,omitempty" jsonschema:"filter over seq, type, actor, winner, score and ts, e.g. type = \"played\""`
	OrderBy   string `json:"order_by,omitempty" jsonschema:"seq or seq desc"`
}

// RoundEventEntry is one journal entry.
type RoundEventEntry struct {
	Seq        uint64 `json:"seq" jsonschema:"journal sequence number"`
	Type       string `json:"type" jsonschema:"event type"`
	Actor      string `json:"actor" jsonschema:"identity that issued the command"`
	Amount     uint64 `json:"amount" jsonschema:"value moved by the command"`
	Winner     string `json:"winner,omitempty" jsonschema:"winner after the command"`
	Score      uint32 `json:"score" jsonschema:"high score after the command"`
	Pool       uint64 `json:"pool" jsonschema:"pool after the command"`
	OccurredAt int64  `json:"occurred_at" jsonschema:"unix seconds of the command"`
	RequestID  string `json:"request_id,omitempty" jsonschema:"request correlation id"`
}

// RoundEventsResult is one page of journal entries.
type RoundEventsResult struct {
	Events        []RoundEventEntry `json:"events" jsonschema:"journal entries"`
	NextPageToken string            `json:"next_page_token,omitempty" jsonschema:"token for the next page"`
}

// RoundEventsTool defines the MCP tool schema for the operation journal.
func RoundEventsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "round_events",
		Description: "Lists entries of the round operation journal with optional filter and ordering.",
	}
}

// RoundEventsHandler lists journal entries.
func RoundEventsHandler(client roundv1.RoundServiceClient, identity Identity) mcp.ToolHandlerFor[RoundEventsInput, RoundEventsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RoundEventsInput) (*mcp.CallToolResult, RoundEventsResult, error) {
		if client == nil {
			return nil, RoundEventsResult{}, fmt.Errorf("round client is not configured")
		}
		callCtx, cancel, err := newCallContext(ctx, identity)
		if err != nil {
			return nil, RoundEventsResult{}, err
		}
		defer cancel()

		response, err := client.ListRoundEvents(callCtx, &roundv1.ListRoundEventsRequest{
			PageSize:  input.PageSize,
			PageToken: input.PageToken,
			Filter:    input.Filter,
			OrderBy:   input.OrderBy,
		})
		if err != nil {
			return nil, RoundEventsResult{}, fmt.Errorf("round events failed: %w", err)
		}
		if response == nil {
			return nil, RoundEventsResult{}, fmt.Errorf("round events response is missing")
		}

		result := RoundEventsResult{
			Events:        make([]RoundEventEntry, 0, len(response.Events)),
			NextPageToken: response.NextPageToken,
		}
		for _, evt := range response.Events {
			if evt == nil {
				continue
			}
			result.Events = append(result.Events, RoundEventEntry{
				Seq:        evt.Seq,
				Type:       evt.Type,
				Actor:      evt.Actor,
				Amount:     evt.Amount,
				Winner:     evt.Winner,
				Score:      evt.Score,
				Pool:       evt.Pool,
				OccurredAt: evt.OccurredAt,
				RequestID:  evt.RequestID,
			})
		}
		return nil, result, nil
	}
}

// AccountBalanceInput names a ledger account.
type AccountBalanceInput struct {
	Account string `json:"account,omitempty" jsonschema:"ledger account; defaults to the configured caller"`
}

// AccountBalanceResult is a ledger balance.
type AccountBalanceResult struct {
	Account string `json:"account" jsonschema:"ledger account"`
	Balance uint64 `json:"balance" jsonschema:"account balance"`
}

// AccountBalanceTool defines the MCP tool schema for ledger balances.
func AccountBalanceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "account_balance",
		Description: "Returns the ledger balance of an account, including round:custody.",
	}
}

// AccountBalanceHandler reads a ledger balance.
func AccountBalanceHandler(client roundv1.RoundServiceClient, identity Identity) mcp.ToolHandlerFor[AccountBalanceInput, AccountBalanceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AccountBalanceInput) (*mcp.CallToolResult, AccountBalanceResult, error) {
		if client == nil {
			return nil, AccountBalanceResult{}, fmt.Errorf("round client is not configured")
		}
		if input.Account == "" && identity.Caller == "" && identity.Token == "" {
			return nil, AccountBalanceResult{}, fmt.Errorf("account is required when no caller is configured")
		}
		callCtx, cancel, err := newCallContext(ctx, identity)
		if err != nil {
			return nil, AccountBalanceResult{}, err
		}
		defer cancel()

		response, err := client.GetBalance(callCtx, &roundv1.GetBalanceRequest{Account: input.Account})
		if err != nil {
			return nil, AccountBalanceResult{}, fmt.Errorf("account balance failed: %w", err)
		}
		if response == nil {
			return nil, AccountBalanceResult{}, fmt.Errorf("account balance response is missing")
		}
		return nil, AccountBalanceResult{Account: response.Account, Balance: response.Balance}, nil
	}
}

// RoundStatusResourceURI addresses the round status resource.
const RoundStatusResourceURI = "round://status"

// RoundStatusResource defines the MCP resource for the round record.
func RoundStatusResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "round_status",
		Title:       "Round status",
		Description: "Readable round record with its derived phase.",
		MIMEType:    "application/json",
		URI:         RoundStatusResourceURI,
	}
}

// RoundStatusResourceHandler returns the round record as JSON.
func RoundStatusResourceHandler(client roundv1.RoundServiceClient, identity Identity) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := RoundStatusResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != RoundStatusResourceURI {
			return nil, fmt.Errorf("unknown round resource %q", uri)
		}
		result, err := fetchRoundStatus(ctx, client, identity)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal round status: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

func newCallContext(ctx context.Context, identity Identity) (context.Context, context.CancelFunc, error) {
	requestID, err := grpcmeta.NewRequestID()
	if err != nil {
		return nil, nil, fmt.Errorf("generate request id: %w", err)
	}
	runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
	return grpcmeta.OutgoingContext(runCtx, identity.Caller, identity.Token, requestID, ""), cancel, nil
}
