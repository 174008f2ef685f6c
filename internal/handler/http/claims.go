package http

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// claimsFromContext extracts the company and operator identity the JWT
// carries. The engine services never see the token: handlers pass these
// as explicit arguments.
func claimsFromContext(ctx context.Context) (companyID, operatorID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	operatorID, _ = claims["user_id"].(string)

	return companyID, operatorID, nil
}
