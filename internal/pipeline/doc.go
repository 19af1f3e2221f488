// Package pipeline runs the batch stages of plenar: download protocols from
// the source, parse them into speeches, analyze word usage per party and
// export the raw and web JSON files.
//
// A Runner wires the stages for a Plan. After a successful run it publishes
// an ExportCompleted event on the Bus, where the NATS Notifier (optionally
// wrapped WithRetry and a DeadLetterQueue) forwards it. Watch repeats runs on
// a gocron schedule.
package pipeline
