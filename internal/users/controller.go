package users

import (
	"net/http"

	"github.com/advdv/anyhttp"
)

// Controller exposes the service over HTTP.
type Controller struct {
	svc *Service
	rev *anyhttp.Reverser
}

// NewController creates the controller. The reverser is used for Location headers and only needs
// to be filled once requests are served.
func NewController(svc *Service, rev *anyhttp.Reverser) *Controller {
	return &Controller{svc: svc, rev: rev}
}

func (uc *Controller) getUsers(c *anyhttp.Context) error {
	list, err := uc.svc.List(c)
	if err != nil {
		return err
	}

	return c.Res.JSON(list)
}

func (uc *Controller) getUser(c *anyhttp.Context) error {
	u, err := uc.svc.Get(c, c.Req.Param("id"))
	if err != nil {
		return err
	}

	return c.Res.JSON(u)
}

func (uc *Controller) createUser(c *anyhttp.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return err
	}

	u, err := uc.svc.Create(c, in)
	if err != nil {
		return err
	}

	if loc, err := uc.rev.Reverse("UserController.getUser", u.ID); err == nil {
		c.Res.Header("Location", loc)
	} else {
		anyhttp.Log(c).Debug("no location for created user")
	}

	return c.Res.JSON(u, http.StatusCreated)
}

func (uc *Controller) updateUser(c *anyhttp.Context) error {
	in, err := bindInput(c)
	if err != nil {
		return err
	}

	u, err := uc.svc.Update(c, c.Req.Param("id"), in)
	if err != nil {
		return err
	}

	return c.Res.JSON(u)
}

func (uc *Controller) deleteUser(c *anyhttp.Context) error {
	if err := uc.svc.Delete(c, c.Req.Param("id")); err != nil {
		return err
	}

	return c.Res.JSON(map[string]string{"message": "User deleted successfully"})
}

func bindInput(c *anyhttp.Context) (Input, error) {
	var in Input
	if err := c.Req.BindJSON(&in); err != nil {
		return in, anyhttp.NewError(anyhttp.CodeBadRequest, "invalid_body",
			"The request body must be a JSON object.", anyhttp.WithCause(err))
	}

	return in, nil
}

// Controllers binds the handlers under their display names.
func (uc *Controller) Controllers() *anyhttp.Controllers {
	return anyhttp.NewControllers("UserController").
		Add("getUsers", uc.getUsers).
		Add("getUser", uc.getUser).
		Add("createUser", uc.createUser).
		Add("updateUser", uc.updateUser).
		Add("deleteUser", uc.deleteUser)
}
