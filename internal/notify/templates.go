package notify

import "fmt"

func WaitlistReady(restaurant string, minutes int) string {
	if minutes <= 0 {
		return fmt.Sprintf("Hello! Your table at %s is ready. Please come to the host stand.", restaurant)
	}
	return fmt.Sprintf(
		"Hello! Your table at %s will be ready in about %d minutes. Please come to the host stand.",
		restaurant, minutes,
	)
}

func ReservationConfirmation(restaurant, date, time string, partySize int) string {
	return fmt.Sprintf(
		"Reservation confirmed at %s for %d %s on %s at %s. See you soon!",
		restaurant, partySize, people(partySize), date, time,
	)
}

func ReservationReminder(restaurant, time string) string {
	return fmt.Sprintf("Reminder: your reservation at %s is today at %s. See you soon!", restaurant, time)
}

func people(n int) string {
	if n == 1 {
		return "person"
	}
	return "people"
}
