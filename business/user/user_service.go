package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ashiato/domain"
	"ashiato/pkg/logger"
	"ashiato/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// TokenRepository stores login sessions in Redis.
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

const (
	verificationCodeTTL    = 15
	sessionTTL             = 24 * time.Hour
	SubjectVerifyAccount   = "Ashiatoへようこそ！メールアドレスを確認してください"
	EmailBodyVerifyAccount = `%vさん、以下のリンクを開いてアカウントを有効化してください。</br></br>%v</br>このリンクは%v分間有効です。`
)

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Username, "required,min=3,max=30"); err != nil {
		return domain.User{}, errors.New("username must be 3-30 characters")
	}

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	if existing, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil && existing.ID > 0 {
		return domain.User{}, errors.New("email already exists")
	}

	if existing, err := s.userRepo.FindByUsername(ctx, user.Username); err == nil && existing.ID > 0 {
		return domain.User{}, errors.New("username already taken")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Username:   user.Username,
		Email:      user.Email,
		Password:   string(passwordHash),
		Bio:        user.Bio,
		IsVerified: false,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	if err := s.sendVerificationEmail(newUser); err != nil {
		logger.Warn("Failed to send verification email", err)
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) sendVerificationEmail(user domain.User) error {
	expAt := time.Now().Add(verificationCodeTTL * time.Minute).Unix()

	code := fmt.Sprintf("%v|%v", user.Email, expAt)
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(code), []byte(s.appEmailVerificationKey))
	if err != nil {
		return fmt.Errorf("failed to encrypt verification code: %w", err)
	}

	encoded := goshortcute.StringtoBase64Encode(encrypted)
	activationLink := s.appDeploymentUrl + "/api/v1/users/email-verification/" + encoded

	return s.notifRepo.SendEmail(
		user.Username,
		user.Email,
		SubjectVerifyAccount,
		fmt.Sprintf(EmailBodyVerifyAccount, user.Username, activationLink, verificationCodeTTL),
	)
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	decoded := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	decrypted, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.appEmailVerificationKey))
	if err != nil {
		return errors.New("invalid or expired url")
	}

	parts := strings.Split(decrypted, "|")
	if len(parts) != 2 {
		return errors.New("invalid or expired url")
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return errors.New("invalid or expired url")
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return errors.New("invalid or expired url")
	}

	user, err := s.userRepo.FindByEmail(ctx, parts[0])
	if err != nil {
		return errors.New("failed to get user by email")
	}

	if user.IsVerified {
		return errors.New("invalid or expired url")
	}

	return s.userRepo.UpdateEmailVerification(ctx, user.ID, true)
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if !utils.CheckPassword(password, user.Password) {
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if !user.IsVerified {
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if err := s.tokenRepo.StoreToken(ctx, userIdStr, token, sessionTTL); err != nil {
		logger.Error("Failed to store session token", err)
		return "", domain.User{}, errors.New("failed to create session")
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIdStr := strconv.FormatUint(uint64(userID), 10)

	if err := s.tokenRepo.DeleteToken(ctx, userIdStr, token); err != nil {
		logger.Error("Failed to delete session token", err)
		return errors.New("failed to logout")
	}

	return nil
}

// ValidateTokenFromRedis lets the auth middleware check that a JWT still
// has a live session behind it.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// UpdateProfile updates username, bio, and password. Empty fields are left
// untouched.
func (s *userService) UpdateProfile(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if updateData.Username != "" && updateData.Username != existing.Username {
		if err := s.validate.Var(updateData.Username, "required,min=3,max=30"); err != nil {
			return domain.User{}, errors.New("username must be 3-30 characters")
		}
		if other, err := s.userRepo.FindByUsername(ctx, updateData.Username); err == nil && other.ID != id {
			return domain.User{}, errors.New("username already taken")
		}
		existing.Username = updateData.Username
	}

	if updateData.Bio != "" {
		existing.Bio = updateData.Bio
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=6"); err != nil {
			return domain.User{}, errors.New("password must be at least 6 characters")
		}
		passwordHash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			return domain.User{}, errors.New("failed to hash password")
		}
		existing.Password = string(passwordHash)
	}

	if err := s.userRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	existing.Password = ""
	return existing, nil
}
