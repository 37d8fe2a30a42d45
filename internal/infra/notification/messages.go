// Package notification delivers account lifecycle messages by email or event.
package notification

import "tasker/internal/domain/service"

type message struct {
	Subject string
	Body    string
}

func welcomeMessage(to service.Recipient) message {
	return message{
		Subject: "Welcome to the App!",
		Body:    "Hi, " + to.Name + " Enjoy using the app",
	}
}

func cancellationMessage(to service.Recipient) message {
	return message{
		Subject: "Thanks for using the app",
		Body:    "Hi, " + to.Name + " Your details are removed",
	}
}
