package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imohsin99/Bugzilla/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 会话有效期
const sessionTTL = 30 * 24 * time.Hour

// UserLogic 用户注册登录业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Register 注册用户，角色注册后不可变更
func (u *UserLogic) Register(name, email, password, roleName string) (*model.UserModel, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: 用户名和邮箱不能为空", model.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: 密码长度不能少于 6 位", model.ErrValidation)
	}

	role, err := model.ParseRole(roleName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := &model.UserModel{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		UserType:     role,
	}

	if err := u.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: 邮箱已被注册", model.ErrValidation)
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	return user, nil
}

// Login 登录并创建会话，返回会话令牌
func (u *UserLogic) Login(email, password string) (string, *model.UserModel, error) {
	var user model.UserModel
	err := u.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, model.ErrNotAuthorized
		}
		return "", nil, fmt.Errorf("获取用户失败: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, model.ErrNotAuthorized
	}

	session := &model.SessionModel{
		Token:     uuid.NewString(),
		UserId:    user.Id,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := u.db.Create(session).Error; err != nil {
		return "", nil, fmt.Errorf("创建会话失败: %w", err)
	}

	return session.Token, &user, nil
}

// Logout 注销会话
func (u *UserLogic) Logout(token string) error {
	if err := u.db.Where("token = ?", token).Delete(&model.SessionModel{}).Error; err != nil {
		return fmt.Errorf("注销会话失败: %w", err)
	}
	return nil
}

// GetBySession 根据会话令牌取当前用户，过期或不存在均视为未认证
func (u *UserLogic) GetBySession(token string) (*model.UserModel, error) {
	var session model.SessionModel
	err := u.db.Preload("User").Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotAuthorized
		}
		return nil, fmt.Errorf("获取会话失败: %w", err)
	}

	if session.Expired(time.Now()) || session.User == nil {
		return nil, model.ErrNotAuthorized
	}

	return session.User, nil
}
