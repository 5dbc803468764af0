package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

type authServiceImpl struct {
	logger        zerolog.Logger
	oauth         *oauth2.Config
	userInfoURL   string
	jwtIssuer     string
	jwtSigningKey []byte
}

func NewAuthService(
	logger zerolog.Logger,
	clientID string,
	clientSecret string,
	authURL string,
	tokenURL string,
	userInfoURL string,
	redirectURL string,
	jwtIssuer string,
	jwtSigningKey []byte,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
			RedirectURL: redirectURL,
			Scopes:      []string{"identify"},
		},
		userInfoURL:   userInfoURL,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: jwtSigningKey,
	}
}

func (s *authServiceImpl) AuthorizeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

func (s *authServiceImpl) ExchangeCode(ctx context.Context, code string) (*Identity, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to exchange code for token")
		return nil, err
	}
	s.logger.Debug().Msg("exchanged code for token")

	identity, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to fetch user info")
		return nil, err
	}

	s.logger.Info().
		Int64("owner_id", identity.ID).
		Str("username", identity.Username).
		Msg("authenticated user")
	return identity, nil
}

func (s *authServiceImpl) ParseJWTToken(token string) (*jwt.RegisteredClaims, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token is expired: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, errors.New("failed to parse token claims")
	}
	return claims, nil
}

// userInfoResponse is the provider's /users/@me shape. The id comes back
// as a decimal string (a snowflake), not a JSON number.
type userInfoResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (s *authServiceImpl) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	client := s.oauth.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user info request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request user info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned status %d", resp.StatusCode)
	}

	var info userInfoResponse
	err = json.NewDecoder(resp.Body).Decode(&info)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	ownerID, err := strconv.ParseInt(info.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user id %q: %w", info.ID, err)
	}

	return &Identity{
		ID:       ownerID,
		Username: info.Username,
		Avatar:   info.Avatar,
	}, nil
}
