// Package notify maintains the observable unread-notification counter and
// the notification CRUD surface.
//
// A [Poller] owns one recurring background fetch of the unread count. The
// counter is a stale-tolerant cache: mark-read applies an optimistic local
// decrement (clamped at zero), mark-all-read resets to zero, and the next
// poll tick overwrites with server ground truth. No reconciliation is
// attempted between the optimistic writes and an in-flight poll; the last
// write wins.
//
// A failed poll tick is a silent skip — the last published count stands
// and the timer keeps firing. Failed mark-read calls leave the counter
// unchanged and surface their error to the caller.
//
// # What this package must NOT do
//
//   - Leak the poll goroutine: Stop tears the ticker down and waits for
//     the loop to exit.
//   - Retry failed calls or buffer unsent mutations.
package notify
