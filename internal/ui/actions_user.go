package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/internal/service"
	"github.com/irfanhanif/sfams/internal/session"
)

func (a *App) takeRollCall(account *models.Account) session.Action {
	return func(ctx context.Context) (session.Outcome, error) {
		rollCall, err := a.attendance.StartRollCall(ctx, account.ID, today())
		if err != nil {
			return session.Stay, err
		}
		a.console.Printf("\nRoll call for %s on %s. Unmarked students default to Present.\n",
			rollCall.Course.Name, rollCall.Date.Format("2006-01-02"))

		for {
			rows := make([][]string, 0, len(rollCall.Entries))
			for i, entry := range rollCall.Entries {
				rows = append(rows, []string{strconv.Itoa(i + 1), entry.StudentName, string(entry.Status)})
			}
			a.console.Table([]string{"#", "Student", "Status"}, rows)

			n, err := a.console.PromptInt("Student number to cycle status, 0 to save")
			if err != nil {
				return session.Stay, err
			}
			if n == 0 {
				break
			}
			if n < 1 || n > len(rollCall.Entries) {
				a.console.Println("No such student.")
				continue
			}
			rollCall.Entries[n-1].Status = rollCall.Entries[n-1].Status.Next()
		}

		saved := 0
		for _, result := range a.attendance.SaveRollCall(ctx, rollCall) {
			if result.Err != nil {
				a.console.Printf("Could not save %s: ", result.StudentName)
				a.console.ShowError(result.Err)
				continue
			}
			saved++
		}
		a.console.Printf("Saved attendance for %d of %d students.\n", saved, len(rollCall.Entries))
		return session.Stay, nil
	}
}

func (a *App) updateProfile(account *models.Account) session.Action {
	return func(ctx context.Context) (session.Outcome, error) {
		a.console.Println("Leave a field blank to keep its current value.")
		fullName, err := a.console.Prompt("Full name")
		if err != nil {
			return session.Stay, err
		}
		password, err := a.console.Prompt("New password")
		if err != nil {
			return session.Stay, err
		}

		err = a.accounts.UpdateProfile(ctx, account.Role, account.Username, service.UpdateProfileRequest{
			FullName: fullName,
			Password: password,
		})
		if err != nil {
			return session.Stay, err
		}
		a.console.Println("Profile updated.")
		return session.Stay, nil
	}
}

func (a *App) showOutstanding(account *models.Account) session.Action {
	return func(ctx context.Context) (session.Outcome, error) {
		entries, err := a.ledger.Outstanding(ctx, account.ID)
		if err != nil {
			return session.Stay, err
		}
		if len(entries) == 0 {
			a.console.Println("No outstanding fees. You are all settled.")
			return session.Stay, nil
		}
		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				entry.FeeName,
				fmt.Sprintf("%.2f", entry.AmountDue),
				fmt.Sprintf("%.2f", entry.AmountPaid),
				fmt.Sprintf("%.2f", entry.Remaining()),
				string(entry.Status),
			})
		}
		a.console.Table([]string{"Fee", "Due", "Paid", "Remaining", "Status"}, rows)
		return session.Stay, nil
	}
}

func (a *App) payFee(account *models.Account) session.Action {
	return func(ctx context.Context) (session.Outcome, error) {
		entries, err := a.ledger.Outstanding(ctx, account.ID)
		if err != nil {
			return session.Stay, err
		}
		if len(entries) == 0 {
			a.console.Println("No outstanding fees to pay.")
			return session.Stay, nil
		}

		options := make([]string, len(entries))
		for i, entry := range entries {
			options[i] = fmt.Sprintf("%s (%.2f remaining)", entry.FeeName, entry.Remaining())
		}
		idx, err := a.console.Choose("Pay which fee", options)
		if err != nil {
			return session.Stay, err
		}
		entry := entries[idx]

		amount, err := a.console.PromptFloat("Amount")
		if err != nil {
			return session.Stay, err
		}

		payment, err := a.ledger.PayFee(ctx, account.ID, entry.ID, amount)
		if err != nil {
			return session.Stay, err
		}
		remaining := entry.Remaining() - payment.Amount

		a.console.Println("\n---------- RECEIPT ----------")
		a.console.Printf("Transaction  %s\n", payment.TransactionRef)
		a.console.Printf("Fee          %s\n", entry.FeeName)
		a.console.Printf("Paid         %.2f\n", payment.Amount)
		a.console.Printf("Remaining    %.2f\n", remaining)
		a.console.Println("-----------------------------")

		answer, err := a.console.Prompt("Save a PDF receipt? (y/n)")
		if err != nil {
			return session.Stay, err
		}
		if answer == "y" || answer == "Y" {
			path, err := a.exports.SaveReceipt(payment, account.FullName, entry.FeeName, remaining)
			if err != nil {
				return session.Stay, err
			}
			a.console.Printf("Saved %s\n", path)
		}
		return session.Stay, nil
	}
}

func (a *App) showPaymentHistory(account *models.Account) session.Action {
	return func(ctx context.Context) (session.Outcome, error) {
		payments, err := a.ledger.History(ctx, account.ID)
		if err != nil {
			return session.Stay, err
		}
		if len(payments) == 0 {
			a.console.Println("No payments yet.")
			return session.Stay, nil
		}
		rows := make([][]string, 0, len(payments))
		for _, p := range payments {
			rows = append(rows, []string{
				p.TransactionRef,
				p.FeeName,
				fmt.Sprintf("%.2f", p.Amount),
				p.PaidAt.Format("2006-01-02 15:04"),
			})
		}
		a.console.Table([]string{"Reference", "Fee", "Amount", "Paid At"}, rows)
		return session.Stay, nil
	}
}

func (a *App) showAttendance(account *models.Account) session.Action {
	return func(ctx context.Context) (session.Outcome, error) {
		history, summary, err := a.attendance.StudentHistory(ctx, account.ID)
		if err != nil {
			return session.Stay, err
		}
		if len(history) == 0 {
			a.console.Println("No attendance recorded yet.")
			return session.Stay, nil
		}
		rows := make([][]string, 0, len(history))
		for _, row := range history {
			rows = append(rows, []string{row.Date.Format("2006-01-02"), row.CourseName, string(row.Status)})
		}
		a.console.Table([]string{"Date", "Course", "Status"}, rows)
		a.console.Printf("Present %d, absent or late %d.\n", summary.Present, summary.Other)
		return session.Stay, nil
	}
}

func (a *App) showMyScore(account *models.Account) session.Action {
	return func(ctx context.Context) (session.Outcome, error) {
		score, err := a.reports.StudentScore(ctx, account.ID)
		if err != nil {
			return session.Stay, err
		}
		a.console.Printf("Attendance rate: %.1f%%\n", score.AttendanceRate)
		a.console.Printf("Payment rate:    %.1f%%\n", score.PaymentRate)
		a.console.Printf("Score:           %.1f (grade %s)\n", score.Score, score.Grade)
		return session.Stay, nil
	}
}
