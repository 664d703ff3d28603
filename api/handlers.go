package api

import (
	"github.com/0xcafe-io/iz"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/console"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/contextutil"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/gate"
)

func respondScreen(screen console.Screen) iz.Responder {
	return iz.Respond().Status(screenStatus(screen)).JSON(screen)
}

func badBody(err error) iz.Responder {
	return iz.Respond().Status(httpStatusFromError(err)).JSON(console.Screen{Message: appErrors.MessageOf(err)})
}

// --- SESSION AND MENUS --- //

func (api *Api) LoginScreenHandler(r *iz.Request) iz.Responder {
	return iz.Respond().Status(200).JSON(loginScreen)
}

func (api *Api) SessionHandler(r *iz.Request) iz.Responder {
	session := contextutil.SessionFromContext(r.Context())
	return iz.Respond().Status(200).JSON(SessionResponse{
		UserID:   session.UserID,
		UserType: session.Role.String(),
		Landing:  gate.Landing(session.Role),
	})
}

func (api *Api) MenuHandler(r *iz.Request) iz.Responder {
	session := contextutil.SessionFromContext(r.Context())
	admin := r.URL.Path == gate.ADMIN_MENU_PATH && session.IsAdmin()
	return iz.Respond().Status(200).JSON(menuFor(session.UserID, admin))
}

// --- ACCOUNTS --- //

func (api *Api) SearchAccountHandler(r *iz.Request) iz.Responder {
	return respondScreen(api.Console.SearchAccount(r.Context(), r.PathValue("id")))
}

func (api *Api) UpdateAccountHandler(r *iz.Request) iz.Responder {
	form, err := readForm(r.Header, r.Body)
	if err != nil {
		return badBody(err)
	}
	return respondScreen(api.Console.UpdateAccount(r.Context(), r.PathValue("id"), form))
}

// --- CARDS --- //

func (api *Api) ListCardsHandler(r *iz.Request) iz.Responder {
	return respondScreen(api.Console.ListCards(r.Context(), queryForm(r.URL.Query())))
}

func (api *Api) SearchCardHandler(r *iz.Request) iz.Responder {
	return respondScreen(api.Console.SearchCard(r.Context(), r.PathValue("cardNumber")))
}

func (api *Api) UpdateCardHandler(r *iz.Request) iz.Responder {
	form, err := readForm(r.Header, r.Body)
	if err != nil {
		return badBody(err)
	}
	return respondScreen(api.Console.UpdateCard(r.Context(), r.PathValue("cardNumber"), form))
}

// --- TRANSACTIONS --- //

func (api *Api) ListTransactionsHandler(r *iz.Request) iz.Responder {
	return respondScreen(api.Console.ListTransactions(r.Context(), queryForm(r.URL.Query())))
}

func (api *Api) ViewTransactionHandler(r *iz.Request) iz.Responder {
	return respondScreen(api.Console.ViewTransaction(r.Context(), r.PathValue("id")))
}

func (api *Api) CreateTransactionHandler(r *iz.Request) iz.Responder {
	form, err := readForm(r.Header, r.Body)
	if err != nil {
		return badBody(err)
	}
	screen := api.Console.CreateTransaction(r.Context(), form)
	if screen.Err == nil && len(screen.FieldErrors) == 0 {
		return iz.Respond().Status(201).JSON(screen)
	}
	return respondScreen(screen)
}

// --- BILL PAYMENT AND REPORTS --- //

func (api *Api) PayBillHandler(r *iz.Request) iz.Responder {
	form, err := readForm(r.Header, r.Body)
	if err != nil {
		return badBody(err)
	}
	return respondScreen(api.Console.PayBill(r.Context(), form))
}

func (api *Api) GenerateReportHandler(r *iz.Request) iz.Responder {
	form, err := readForm(r.Header, r.Body)
	if err != nil {
		return badBody(err)
	}
	return respondScreen(api.Console.GenerateReport(r.Context(), form))
}

// --- USERS --- //

func (api *Api) ListUsersHandler(r *iz.Request) iz.Responder {
	return respondScreen(api.Console.ListUsers(r.Context(), queryForm(r.URL.Query())))
}

func (api *Api) LoadUserHandler(r *iz.Request) iz.Responder {
	return respondScreen(api.Console.LoadUser(r.Context(), r.PathValue("id")))
}

func (api *Api) CreateUserHandler(r *iz.Request) iz.Responder {
	form, err := readForm(r.Header, r.Body)
	if err != nil {
		return badBody(err)
	}
	screen := api.Console.CreateUser(r.Context(), form)
	if screen.Err == nil && len(screen.FieldErrors) == 0 {
		return iz.Respond().Status(201).JSON(screen)
	}
	return respondScreen(screen)
}

func (api *Api) UpdateUserHandler(r *iz.Request) iz.Responder {
	form, err := readForm(r.Header, r.Body)
	if err != nil {
		return badBody(err)
	}
	return respondScreen(api.Console.UpdateUser(r.Context(), r.PathValue("id"), form))
}

func (api *Api) DeleteUserHandler(r *iz.Request) iz.Responder {
	return respondScreen(api.Console.DeleteUser(r.Context(), r.PathValue("id")))
}
