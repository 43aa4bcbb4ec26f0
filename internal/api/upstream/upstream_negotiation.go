package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/FACorreiaa/wagewatch/internal/api"
	"github.com/FACorreiaa/wagewatch/internal/types"
)

type scriptResponse struct {
	Script *types.NegotiationScript `json:"script"`
}

// NegotiationScript requests a negotiation script. Its content is passed through.
func (c *Client) NegotiationScript(ctx context.Context, req types.NegotiationRequest) (*types.NegotiationScript, error) {
	var resp scriptResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/negotiation/script", req, &resp, defaultClassifier); err != nil {
		return nil, err
	}
	if resp.Script == nil {
		return nil, fmt.Errorf("%w: response has no script", api.ErrTransportFailure)
	}
	return resp.Script, nil
}

type adviceResponse struct {
	Response string               `json:"response"`
	Model    string               `json:"model"`
	Sources  []types.AdviceSource `json:"sources"`
}

// Advice sends one stateless question to the advisory chat service.
func (c *Client) Advice(ctx context.Context, req types.AdviceRequest) (*types.AdviceResponse, error) {
	var resp adviceResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/chatbot/advice", req, &resp, defaultClassifier); err != nil {
		return nil, err
	}
	return &types.AdviceResponse{Response: resp.Response, Model: resp.Model, Sources: resp.Sources}, nil
}
