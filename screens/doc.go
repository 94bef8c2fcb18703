// Package screens holds the state behind the two screens of the app:
// Home (list of scheduled appointments) and BookingForm.
// It doesn't render anything. A front end shows what the state says and
// shows appointment.Message(err) for errors.
package screens
