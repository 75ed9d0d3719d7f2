package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/catalog"
	"github.com/keysai/keysai/internal/pkg/database"
	"github.com/keysai/keysai/internal/pkg/statistics"
)

const adminPageSize = 25

var catalogService *catalog.Service

func getCatalogService() *catalog.Service {
	if catalogService == nil {
		catalogService = catalog.NewServiceFromDB(database.GetDB())
	}
	return catalogService
}

// SetCatalogService replaces the catalog management service. Tests use it to
// inject a fake repository.
func SetCatalogService(s *catalog.Service) {
	catalogService = s
}

func adminPage(c *fiber.Ctx) (offset, limit int, page int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	return (page - 1) * adminPageSize, adminPageSize, page
}

// HandleAdminDashboard renders the admin overview with cached statistics.
func HandleAdminDashboard(c *fiber.Ctx) error {
	go statistics.UpdateCacheIfNeeded()
	stats := statistics.GetStatistics()

	repos := repository.GetGlobalRepositories()
	userCount, _ := repos.User.Count()
	agentCount, _ := repos.Agent.Count()
	subCount, _ := repos.Subscription.Count()

	return render(c, "admin/dashboard", "admin", fiber.Map{
		"Stats":      stats,
		"UserCount":  userCount,
		"AgentCount": agentCount,
		"SubCount":   subCount,
	})
}

// HandleAdminUsers renders the paginated user list, with optional search.
func HandleAdminUsers(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	if query := c.Query("q"); query != "" {
		users, err := repos.User.Search(query)
		if err != nil {
			return redirectWithError(c, "Could not search users.", "/admin")
		}
		return render(c, "admin/users", "admin_users", fiber.Map{
			"Users": users,
			"Query": query,
			"Page":  1,
		})
	}

	offset, limit, page := adminPage(c)
	users, err := repos.User.List(offset, limit)
	if err != nil {
		return redirectWithError(c, "Could not load users.", "/admin")
	}

	total, _ := repos.User.Count()
	data := fiber.Map{
		"Users": users,
		"Page":  page,
	}
	if page > 1 {
		data["PrevPage"] = page - 1
	}
	if int64(offset+limit) < total {
		data["NextPage"] = page + 1
	}
	return render(c, "admin/users", "admin_users", data)
}

// HandleAdminUserRoleUpdate changes a user's role.
func HandleAdminUserRoleUpdate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return redirectWithError(c, "Invalid user id.", "/admin/users")
	}

	user, err := getCatalogService().UpdateUserRole(c.Context(), actorFromContext(c), uint(id), c.FormValue("role"))
	if err != nil {
		return redirectServiceError(c, err, "/admin/users")
	}

	return redirectWithSuccess(c, "Role for "+user.FullName()+" has been updated.", "/admin/users")
}
