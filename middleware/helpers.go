package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Dosada05/doubles-cup/models"
	"github.com/golang-jwt/jwt/v4"
)

// Имена claims, которые подписывает AuthHandler.Login.
const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

var ErrNoClaims = errors.New("user claims not found in context")

func claimFromContext(ctx context.Context, name string) (interface{}, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return nil, ErrNoClaims
	}
	v, ok := claims[name]
	if !ok {
		return nil, fmt.Errorf("missing '%s' claim in token", name)
	}
	return v, nil
}

// GetUserIDFromContext reads user_id. JSON numbers decode as float64; strings and ints are accepted too.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	raw, err := claimFromContext(ctx, jwtClaimUserID)
	if err != nil {
		return 0, err
	}

	var userID int
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("'%s' claim is not an integer: %f", jwtClaimUserID, v)
		}
		userID = int(v)
	case int:
		userID = v
	case string:
		userID, err = strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid '%s' claim: %q", jwtClaimUserID, v)
		}
	default:
		return 0, fmt.Errorf("invalid type for '%s' claim: got %T", jwtClaimUserID, raw)
	}

	if userID <= 0 {
		return 0, fmt.Errorf("invalid user ID value in '%s' claim: %d", jwtClaimUserID, userID)
	}
	return userID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	raw, err := claimFromContext(ctx, jwtClaimRole)
	if err != nil {
		return "", err
	}

	var role models.UserRole
	switch v := raw.(type) {
	case string:
		role = models.UserRole(v)
	case models.UserRole:
		role = v
	default:
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, raw)
	}

	switch role {
	case models.RoleAdmin, models.RoleOrganizer, models.RolePlayer:
		return role, nil
	}
	return "", fmt.Errorf("invalid role value in claim: %q", role)
}
