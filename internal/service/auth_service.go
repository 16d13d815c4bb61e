package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/hxlane/rental_go_server/config"
	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/jwt"
	"github.com/hxlane/rental_go_server/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidRole        = errors.New("不支持的用户角色")
)

type AuthService struct {
	userRepo *repository.UserRepository
	subSvc   *SubscriptionService
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, subSvc *SubscriptionService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		subSvc:   subSvc,
		cfg:      cfg,
	}
}

type RegisterInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	Role          string
	ContactNumber string
}

// Register 注册用户。房东自动获得默认免费套餐的生效订阅，租客建立空档案等待房东关联
func (s *AuthService) Register(input *RegisterInput) (*model.User, string, error) {
	if input.Role != model.RoleLandlord && input.Role != model.RoleTenant {
		return nil, "", ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		PasswordHash:  string(hash),
		Role:          input.Role,
		ContactNumber: input.ContactNumber,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	switch input.Role {
	case model.RoleTenant:
		profile := &model.TenantProfile{UserID: user.ID}
		if err := s.userRepo.CreateTenantProfile(profile); err != nil {
			return nil, "", err
		}
	case model.RoleLandlord:
		// 注册即挂默认免费套餐，失败不阻断注册（缺默认套餐时由套餐服务兜底创建）
		_ = s.subSvc.GrantDefaultPlan(user.ID)
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login 邮箱密码登录
func (s *AuthService) Login(email, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
