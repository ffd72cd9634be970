package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aerocode/backend/config"
	"aerocode/backend/internal/dto"
	"aerocode/backend/internal/repository"
	"aerocode/backend/pkg/jwt"
)

// TokenBlacklist 会话注销存储，由 Redis 实现
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	// Authenticate 校验登录名与密码，成功返回不含凭据的员工信息
	Authenticate(ctx context.Context, login, password string) (*dto.EmployeeResponse, error)
	// Login 认证并签发会话 Token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout 注销会话；未配置黑名单时仅依赖 Token 过期
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	// Me 当前员工信息及其能力列表
	Me(ctx context.Context, cpf string) (*dto.MeResponse, error)
	// SessionLevel 会话员工的当前权限等级；员工已删除时返回 ErrSessionInvalid
	SessionLevel(ctx context.Context, cpf string) (int, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例，blacklist 可为 nil
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Authenticate(ctx context.Context, login, password string) (*dto.EmployeeResponse, error) {
	if blank(login, password) {
		return nil, ErrInvalidCredentials
	}

	// 1. 按登录名查询
	employee, err := s.repo.Employee.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return toEmployeeResponse(employee), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	employee, err := s.Authenticate(ctx, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.Warn("登录失败", zap.String("login", req.Login))
		}
		return nil, err
	}

	token, err := s.jwtMgr.GenerateToken(employee.CPF, employee.Login, employee.Level)
	if err != nil {
		s.logger.Error("生成会话 Token 失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("员工登录", zap.String("cpf", employee.CPF), zap.Int("level", employee.Level))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
		Employee:  *employee,
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("注销会话失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, cpf string) (*dto.MeResponse, error) {
	employee, err := s.repo.Employee.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("cpf", cpf), zap.Error(err))
		return nil, err
	}

	return &dto.MeResponse{
		Employee:     *toEmployeeResponse(employee),
		Capabilities: Capabilities(employee.Level),
	}, nil
}

func (s *authService) SessionLevel(ctx context.Context, cpf string) (int, error) {
	employee, err := s.repo.Employee.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSessionInvalid
		}
		s.logger.Error("校验会话员工失败", zap.String("cpf", cpf), zap.Error(err))
		return 0, err
	}
	return employee.Level, nil
}
