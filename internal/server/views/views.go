// Package views holds the server-rendered storefront pages: sign-in,
// dashboard and the two checkout result pages.
package views

import (
	"time"

	"github.com/lamnguyen-ct/storefront/internal/models"
	"github.com/lamnguyen-ct/storefront/pkg/tmplx"
)

var checkoutSuccessTmpl = tmplx.MustParse("checkout_success", `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Checkout</title></head>
<body>
{{if .Verified}}
<h2>Payment Successful!</h2>
<p>Thank you for your purchase. Your order has been processed successfully.</p>
<p><a href="/">Continue Shopping</a> <a href="/protected/orders">View Orders</a></p>
{{else}}
<h2>Payment Verification Failed</h2>
<p>There was an issue verifying your payment. If you believe this is an error, please contact our support team.</p>
<p><a href="/cart">Return to Cart</a></p>
{{end}}
</body>
</html>`)

var checkoutFailureTmpl = tmplx.MustParse("checkout_failure", `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Checkout</title></head>
<body>
<h2>Payment Not Completed</h2>
{{if .Error}}
<p>There was an issue with your payment: {{escape .Error}}</p>
{{else}}
<p>Your payment was not completed. No charges were made to your account.</p>
{{end}}
<p><a href="/cart">Return to Cart</a> <a href="/">Continue Shopping</a></p>
</body>
</html>`)

var signInTmpl = tmplx.MustParse("signin", `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{if .SignUp}}Sign Up{{else}}Sign In{{end}}</title></head>
<body>
<h1>{{if .SignUp}}Sign Up{{else}}Sign In{{end}}</h1>
{{if .Notice}}<p class="notice">{{escape .Notice}}</p>{{end}}
{{if .Error}}<p class="error">{{escape .Error}}</p>{{end}}
<form method="post" action="{{if .SignUp}}/signup{{else}}/signin{{end}}">
<label>Email <input type="email" name="email" value="{{escape .Email}}" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">{{if .SignUp}}Sign Up{{else}}Sign In{{end}}</button>
</form>
{{if .SignUp}}
<p>Already have an account? <a href="/signin">Sign In</a></p>
{{else}}
<p>Don't have an account? <a href="/signin?mode=signup">Sign Up</a></p>
{{end}}
</body>
</html>`)

var dashboardTmpl = tmplx.MustParse("dashboard", `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Dashboard</title></head>
<body>
<h1>Welcome to Dashboard</h1>
<p>Logged in as: {{escape .User.Email}}</p>
<form method="post" action="/signout"><button type="submit">Sign Out</button></form>
</body>
</html>`)

var ordersTmpl = tmplx.MustParse("orders", `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Orders</title></head>
<body>
<h1>Your Orders</h1>
{{if .Orders}}
<table>
<tr><th>Date</th><th>Status</th><th>Total</th></tr>
{{range .Orders}}
<tr><td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td><td>{{escape .Status}}</td><td>{{printf "%.2f" .Total}} {{escape .Currency}}</td></tr>
{{end}}
</table>
{{else}}
<p>No orders yet.</p>
{{end}}
<p><a href="/">Continue Shopping</a></p>
</body>
</html>`)

type SignInData struct {
	SignUp bool
	Email  string
	Error  string
	Notice string
}

type DashboardData struct {
	User *models.User
}

type orderRow struct {
	CreatedAt time.Time
	Status    string
	Currency  string
	Total     float64
}

// Orders renders the order history, newest first. Amounts arrive in
// minor currency units and are shown as decimals.
func Orders(orders []*models.Order) (string, error) {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{
			CreatedAt: o.CreatedAt,
			Status:    o.Status,
			Currency:  o.Currency,
			Total:     float64(o.AmountTotal) / 100,
		})
	}
	buf, err := ordersTmpl.Render(map[string]any{"Orders": rows})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func CheckoutSuccess(verified bool) (string, error) {
	buf, err := checkoutSuccessTmpl.Render(map[string]any{"Verified": verified})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func CheckoutFailure(errMessage string) (string, error) {
	buf, err := checkoutFailureTmpl.Render(map[string]any{"Error": errMessage})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func SignIn(data SignInData) (string, error) {
	buf, err := signInTmpl.Render(data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func Dashboard(data DashboardData) (string, error) {
	buf, err := dashboardTmpl.Render(data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
