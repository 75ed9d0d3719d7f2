package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/statistics"
)

// HandleOAuthBegin starts the provider handshake.
func HandleOAuthBegin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the handshake, then finds or creates the
// matching account and starts a session.
func HandleOAuthCallback(c *fiber.Ctx) error {
	gothUser, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		log.Printf("oauth callback: %v", err)
		return redirectWithError(c, "Login via provider failed, please try again.", "/login")
	}

	repo := repository.GetGlobalRepositories().User

	user, err := repo.GetByProvider(gothUser.Provider, gothUser.UserID)
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) && gothUser.Email != "" {
		// Link the provider identity to an existing account by email.
		if existing, lookupErr := repo.GetByEmail(gothUser.Email); lookupErr == nil {
			existing.Provider = gothUser.Provider
			existing.ProviderUserID = gothUser.UserID
			if updateErr := repo.Update(existing); updateErr != nil {
				log.Printf("link provider %s to user %d: %v", gothUser.Provider, existing.ID, updateErr)
			}
			user, err = existing, nil
		}
	}

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return redirectWithError(c, "Something went wrong, please try again.", "/login")
		}

		user = oauthUser(gothUser.Provider, gothUser.UserID, gothUser.Email, gothUser.FirstName, gothUser.LastName, gothUser.Name)
		if err := repo.Create(user); err != nil {
			log.Printf("create oauth user (%s): %v", gothUser.Provider, err)
			return redirectWithError(c, "Could not create your account, please try again.", "/login")
		}

		go statistics.UpdateStatisticsCache()
	}

	if !user.IsActive() {
		return redirectWithError(c, "Your account is disabled.", "/login")
	}

	if err := startSession(c, user); err != nil {
		return redirectWithError(c, "Something went wrong, please try again.", "/login")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repo.Update(user); err != nil {
		log.Printf("update last login for user %d: %v", user.ID, err)
	}

	return redirectWithSuccess(c, "Welcome!", "/dashboard")
}

// HandleOAuthLogout clears the provider session before the regular logout.
func HandleOAuthLogout(c *fiber.Ctx) error {
	if err := gothfiber.Logout(c); err != nil {
		log.Printf("oauth logout: %v", err)
	}
	return HandleAuthLogout(c)
}

// oauthUser maps a provider profile onto a local account. Provider accounts
// carry no usable password.
func oauthUser(provider, providerUserID, email, firstName, lastName, displayName string) *models.User {
	if firstName == "" && displayName != "" {
		parts := strings.SplitN(displayName, " ", 2)
		firstName = parts[0]
		if len(parts) == 2 {
			lastName = parts[1]
		}
	}
	if firstName == "" {
		firstName = provider
	}
	if lastName == "" {
		lastName = "user"
	}

	return &models.User{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Role:           models.ROLE_USER,
		Status:         models.STATUS_ACTIVE,
		Provider:       provider,
		ProviderUserID: providerUserID,
	}
}
