package stubapi

import (
	"fmt"
	"strings"

	"github.com/0xcafe-io/iz"

	appErrors "github.com/patilpriyadarshini/migration-repo-sub001/errors"
	"github.com/patilpriyadarshini/migration-repo-sub001/internal/carddemo"
)

// --- AUTH --- //

func (api *StubApi) LoginHandler(r *iz.Request) iz.Responder {
	var loginRequest carddemo.LoginRequest
	if err := decodeBody(r, &loginRequest); err != nil {
		return respondError(r, err)
	}

	response := carddemo.LoginResponse{UserID: loginRequest.UserID}
	user, err := api.Store.ValidateUser(loginRequest.UserID, loginRequest.Password)
	if err != nil {
		response.Message = appErrors.MessageOf(err)
		return iz.Respond().Status(httpStatusFromError(err)).JSON(response)
	}

	response.UserType = user.UserType
	response.Success = true
	response.Message = "Login successful"
	return iz.Respond().Status(200).JSON(response)
}

// --- ACCOUNTS --- //

func accountIDFromPath(r *iz.Request) (int64, error) {
	acctID, err := carddemo.ParseAccountID(r.PathValue("id"))
	if err != nil {
		return 0, appErrors.New(appErrors.ErrInvalidInput, "Account ID must be exactly 11 digits")
	}
	return acctID, nil
}

func (api *StubApi) GetAccountHandler(r *iz.Request) iz.Responder {
	acctID, err := accountIDFromPath(r)
	if err != nil {
		return respondError(r, err)
	}
	acct, err := api.Store.GetAccount(acctID)
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(acct)
}

func (api *StubApi) UpdateAccountHandler(r *iz.Request) iz.Responder {
	acctID, err := accountIDFromPath(r)
	if err != nil {
		return respondError(r, err)
	}
	var acct carddemo.Account
	if err := decodeBody(r, &acct); err != nil {
		return respondError(r, err)
	}
	updated, err := api.Store.UpdateAccount(acctID, acct)
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(updated)
}

// --- CARDS --- //

func (api *StubApi) GetCardsHandler(r *iz.Request) iz.Responder {
	page, size, err := pageParams(r)
	if err != nil {
		return respondError(r, err)
	}

	params := r.URL.Query()
	var acctID int64
	if id := params.Get("accountId"); id != "" {
		if acctID, err = carddemo.ParseAccountID(id); err != nil {
			return respondError(r, appErrors.New(appErrors.ErrInvalidInput, "Account ID must be exactly 11 digits"))
		}
	}

	cards := api.Store.GetCards(acctID, params.Get("cardNumber"))
	return iz.Respond().Status(200).JSON(carddemo.Paginate(cards, page, size))
}

func (api *StubApi) GetCardHandler(r *iz.Request) iz.Responder {
	card, err := api.Store.GetCard(r.PathValue("cardNumber"))
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(card)
}

func (api *StubApi) UpdateCardHandler(r *iz.Request) iz.Responder {
	var card carddemo.Card
	if err := decodeBody(r, &card); err != nil {
		return respondError(r, err)
	}
	if card.CardStatus != "Y" && card.CardStatus != "N" {
		return respondError(r, appErrors.New(appErrors.ErrInvalidInput, "Card status must be Y or N"))
	}
	updated, err := api.Store.UpdateCard(r.PathValue("cardNumber"), card)
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(updated)
}

// --- TRANSACTIONS --- //

func (api *StubApi) GetTransactionsHandler(r *iz.Request) iz.Responder {
	page, size, err := pageParams(r)
	if err != nil {
		return respondError(r, err)
	}
	transactions := api.Store.GetTransactions(r.URL.Query().Get("transactionId"))
	return iz.Respond().Status(200).JSON(carddemo.Paginate(transactions, page, size))
}

func (api *StubApi) GetTransactionByIdHandler(r *iz.Request) iz.Responder {
	t, err := api.Store.GetTransactionById(r.PathValue("id"))
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(t)
}

func (api *StubApi) SaveTransactionHandler(r *iz.Request) iz.Responder {
	var newTransactionReq carddemo.TransactionCreateRequest
	if err := decodeBody(r, &newTransactionReq); err != nil {
		return respondError(r, err)
	}
	if !newTransactionReq.TranAmt.IsPositive() && !newTransactionReq.TranAmt.IsNegative() {
		return respondError(r, appErrors.New(appErrors.ErrInvalidInput, "Transaction amount cannot be zero"))
	}
	t, err := api.Store.SaveTransaction(newTransactionReq)
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(201).JSON(t)
}

// --- BILL PAYMENT --- //

func (api *StubApi) PayBillHandler(r *iz.Request) iz.Responder {
	var req carddemo.BillPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		return respondError(r, err)
	}
	resp, err := api.Store.PayBill(req)
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(resp)
}

// --- REPORTS --- //

func (api *StubApi) GenerateReportHandler(r *iz.Request) iz.Responder {
	reportType := strings.ToLower(r.PathValue("type"))
	switch reportType {
	case "monthly", "yearly", "custom":
	default:
		return respondError(r, appErrors.New(appErrors.ErrInvalidInput, fmt.Sprintf("Unknown report type: %s", reportType)))
	}

	var req carddemo.ReportRequest
	if err := decodeBody(r, &req); err != nil {
		return respondError(r, err)
	}
	req.ReportType = reportType
	if reportType == "custom" && (req.StartDate == "" || req.EndDate == "") {
		return respondError(r, appErrors.New(appErrors.ErrInvalidInput, "Custom reports need a start and end date"))
	}
	return iz.Respond().Status(202).JSON(api.Store.SaveReport(req))
}

// --- USERS --- //

func (api *StubApi) GetUsersHandler(r *iz.Request) iz.Responder {
	page, size, err := pageParams(r)
	if err != nil {
		return respondError(r, err)
	}
	users := api.Store.GetUsers(r.URL.Query().Get("userId"))
	return iz.Respond().Status(200).JSON(carddemo.Paginate(users, page, size))
}

func (api *StubApi) GetUserHandler(r *iz.Request) iz.Responder {
	user, err := api.Store.GetUser(r.PathValue("id"))
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(user)
}

func (api *StubApi) SaveUserHandler(r *iz.Request) iz.Responder {
	var newUserReq carddemo.UserCreateRequest
	if err := decodeBody(r, &newUserReq); err != nil {
		return respondError(r, err)
	}
	if len(newUserReq.UserID) != carddemo.USER_ID_LENGTH || len(newUserReq.Password) != carddemo.PASSWORD_LENGTH {
		return respondError(r, appErrors.New(appErrors.ErrInvalidInput, "User ID and password must be exactly 8 characters"))
	}

	user := carddemo.User{
		UserID:    newUserReq.UserID,
		FirstName: newUserReq.FirstName,
		LastName:  newUserReq.LastName,
		UserType:  newUserReq.UserType,
	}
	if err := api.Store.SaveUser(user, newUserReq.Password); err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(201).JSON(user)
}

func (api *StubApi) UpdateUserHandler(r *iz.Request) iz.Responder {
	var req carddemo.UserUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		return respondError(r, err)
	}
	user, err := api.Store.UpdateUser(r.PathValue("id"), req)
	if err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(user)
}

func (api *StubApi) DeleteUserHandler(r *iz.Request) iz.Responder {
	userID := r.PathValue("id")
	if err := api.Store.DeleteUser(userID); err != nil {
		return respondError(r, err)
	}
	return iz.Respond().Status(200).JSON(carddemo.MessageResponse{Message: fmt.Sprintf("User %s deleted", userID)})
}
