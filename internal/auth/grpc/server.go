// Package grpcserver exposes the token lifecycle as a gRPC API for
// resource servers and internal callers.
//
// The generated stubs under gen/go/authkit/v1 come from
// proto/authkit/v1/auth.proto; run protoc before building.
package grpcserver

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/nightglass/authkit/gen/go/authkit/v1"
	"github.com/nightglass/authkit/internal/auth/service"
)

// Server wires the auth services into gRPC handlers.
type Server struct {
	pb.UnimplementedAuthServiceServer

	login  *service.LoginService
	tokens *service.TokenService
}

// New constructs a gRPC server with injected services.
func New(login *service.LoginService, tokens *service.TokenService) *Server {
	return &Server{login: login, tokens: tokens}
}

// Login authenticates a username/secret pair and returns a token pair.
func (s *Server) Login(ctx context.Context, req *pb.LoginRequest) (*pb.TokenPairResponse, error) {
	if req.GetUsername() == "" || req.GetSecret() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty username/secret")
	}

	pair, err := s.login.PasswordLogin(ctx, req.GetUsername(), req.GetSecret())
	if err != nil {
		return nil, mapErr(err)
	}

	return &pb.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}, nil
}

// Verify validates an access token and returns its claims.
func (s *Server) Verify(ctx context.Context, req *pb.VerifyRequest) (*pb.VerifyResponse, error) {
	if req.GetAccessToken() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty access_token")
	}

	claims, err := s.tokens.VerifyAccessToken(ctx, req.GetAccessToken())
	if err != nil {
		return nil, mapErr(err)
	}

	out := &pb.VerifyResponse{
		Subject:   claims.Subject,
		Roles:     claims.Roles,
		Tenant:    claims.Tenant,
		TokenId:   claims.ID,
		LineageId: claims.SID,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return out, nil
}

// Refresh rotates a refresh token into a new pair.
func (s *Server) Refresh(ctx context.Context, req *pb.RefreshRequest) (*pb.TokenPairResponse, error) {
	if req.GetRefreshToken() == "" {
		return nil, status.Error(codes.InvalidArgument, "empty refresh_token")
	}

	pair, err := s.login.Refresh(ctx, req.GetRefreshToken())
	if err != nil {
		return nil, mapErr(err)
	}

	return &pb.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}, nil
}

// Revoke invalidates a refresh token and its lineage.
func (s *Server) Revoke(ctx context.Context, req *pb.RevokeRequest) (*pb.RevokeResponse, error) {
	if err := s.login.Logout(ctx, req.GetRefreshToken()); err != nil {
		return nil, mapErr(err)
	}
	return &pb.RevokeResponse{}, nil
}

// mapErr translates the service taxonomy into gRPC status codes. Messages
// stay generic; detail belongs in server logs, not on the wire.
func mapErr(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, service.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "invalid token")
	case errors.Is(err, service.ErrExpired):
		return status.Error(codes.Unauthenticated, "token expired")
	case errors.Is(err, service.ErrRevoked):
		return status.Error(codes.Unauthenticated, "token revoked")
	case errors.Is(err, service.ErrReplayDetected):
		return status.Error(codes.Unauthenticated, "token replay detected")
	case errors.Is(err, service.ErrKeyUnavailable),
		errors.Is(err, service.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "service unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
