// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package activesync

import (
	"mellium.im/wbxml/redact"
)

func keep(local string, children ...*redact.Node) *redact.Node {
	return redact.Elem(local, redact.None, children...)
}

func summary(local string) *redact.Node { return redact.Elem(local, redact.Partial) }
func drop(local string) *redact.Node    { return redact.Elem(local, redact.Full) }

// Structural elements shared by the request and response shapes of several
// commands.
func status() *redact.Node   { return keep("Status") }
func syncKey() *redact.Node  { return keep("SyncKey") }
func serverID() *redact.Node { return keep("ServerId") }

func body() *redact.Node {
	return keep("Body",
		keep("Type"),
		keep("EstimatedDataSize"),
		keep("Truncated"),
		summary("Data"),
		summary("Preview"),
	)
}

func applicationData() *redact.Node {
	return keep("ApplicationData",
		body(),
		keep("Read"),
		keep("Importance"),
		keep("MessageClass"),
		keep("DateReceived"),
		keep("InternetCPID"),
		keep("ContentClass"),
		keep("NativeBodyType"),
		summary("Subject"),
		summary("From"),
		summary("To"),
		summary("Cc"),
		summary("ReplyTo"),
		summary("DisplayTo"),
		summary("ThreadTopic"),
		summary("ConversationId"),
		summary("ConversationIndex"),
		keep("Attachments",
			keep("Attachment",
				summary("DisplayName"),
				summary("FileReference"),
				keep("Method"),
				keep("EstimatedDataSize"),
				keep("IsInline"),
			),
		),
		keep("Flag", keep("FlagStatus"), keep("FlagType"), keep("CompleteTime")),
	)
}

func collection() *redact.Node {
	return keep("Collection",
		syncKey(),
		keep("CollectionId"),
		keep("Class"),
		status(),
		keep("GetChanges"),
		keep("DeletesAsMoves"),
		keep("WindowSize"),
		keep("MoreAvailable"),
		keep("Options",
			keep("FilterType"),
			keep("MIMESupport"),
			keep("MIMETruncation"),
			keep("BodyPreference", keep("Type"), keep("TruncationSize"), keep("AllOrNone")),
		),
		keep("Commands",
			keep("Add", serverID(), keep("ClientId"), applicationData()),
			keep("Change", serverID(), applicationData()),
			keep("Delete", serverID()),
			keep("SoftDelete", serverID()),
			keep("Fetch", serverID(), applicationData()),
		),
		keep("Responses",
			keep("Add", serverID(), keep("ClientId"), status()),
			keep("Change", serverID(), status()),
			keep("Fetch", serverID(), status(), applicationData()),
		),
	)
}

// Policies are the default redaction policies for ActiveSync commands.
//
// Structure, status codes, and synchronization state are kept so that protocol
// problems can be diagnosed.
// Message content, names, and addresses are reduced to their length.
// Credentials and device identifiers are removed entirely.
// Commands without a policy are not captured.
var Policies = redact.Policies{}.Add(
	redact.NewTree(NSAirSync,
		keep("Sync",
			keep("Collections", collection()),
			status(),
			keep("Wait"),
			keep("HeartbeatInterval"),
			keep("WindowSize"),
			keep("Limit"),
			keep("Partial"),
		),
	),
	redact.NewTree(NSFolderHierarchy,
		keep("FolderSync",
			status(),
			syncKey(),
			keep("Changes",
				keep("Count"),
				keep("Add", serverID(), keep("ParentId"), keep("Type"), summary("DisplayName")),
				keep("Update", serverID(), keep("ParentId"), keep("Type"), summary("DisplayName")),
				keep("Delete", serverID()),
			),
		),
	),
	redact.NewTree(NSPing,
		keep("Ping",
			status(),
			keep("HeartbeatInterval"),
			keep("MaxFolders"),
			keep("Folders", keep("Folder", keep("Id"), keep("Class"))),
		),
	),
	redact.NewTree(NSProvision,
		keep("Provision",
			status(),
			keep("RemoteWipe", status()),
			keep("AccountOnlyRemoteWipe", status()),
			drop("DeviceInformation"),
			keep("Policies",
				keep("Policy",
					keep("PolicyType"),
					keep("PolicyKey"),
					status(),
					summary("Data"),
				),
			),
		),
	),
	redact.NewTree(NSSettings,
		keep("Settings",
			status(),
			drop("DeviceInformation"),
			drop("DevicePassword"),
			keep("Oof",
				status(),
				keep("Get", keep("BodyType")),
				keep("Set", keep("OofState"), keep("StartTime"), keep("EndTime"), summary("OofMessage")),
			),
			keep("UserInformation",
				status(),
				keep("Get",
					summary("EmailAddresses"),
					keep("Accounts", keep("Account", keep("AccountId"), summary("AccountName"), summary("UserDisplayName"))),
				),
			),
		),
	),
	redact.NewTree(NSItemOperations,
		keep("ItemOperations",
			status(),
			keep("Response",
				keep("Fetch",
					status(),
					keep("CollectionId"),
					serverID(),
					keep("FileReference"),
					keep("Class"),
					keep("Properties",
						body(),
						keep("Range"),
						keep("Total"),
						summary("Data"),
						keep("ContentType"),
					),
				),
			),
			keep("Fetch",
				keep("Store"),
				keep("CollectionId"),
				serverID(),
				keep("FileReference"),
				keep("Options", keep("Range"), keep("Schema"), drop("UserName"), drop("Password")),
			),
		),
	),
	redact.NewTree(NSComposeMail,
		keep("SendMail", keep("ClientId"), keep("SaveInSentItems"), status(), summary("Mime")),
		keep("SmartReply", keep("ClientId"), keep("SaveInSentItems"), status(), keep("Source", keep("FolderId"), keep("ItemId")), summary("Mime")),
		keep("SmartForward", keep("ClientId"), keep("SaveInSentItems"), status(), keep("Source", keep("FolderId"), keep("ItemId")), summary("Mime")),
	),
)
