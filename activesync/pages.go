// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package activesync

import (
	"mellium.im/wbxml/codepage"
)

// Namespaces of the ActiveSync code pages.
const (
	NSAirSync           = "AirSync"
	NSContacts          = "Contacts"
	NSEmail             = "Email"
	NSAirNotify         = "AirNotify"
	NSCalendar          = "Calendar"
	NSMove              = "Move"
	NSItemEstimate      = "ItemEstimate"
	NSFolderHierarchy   = "FolderHierarchy"
	NSMeetingResponse   = "MeetingResponse"
	NSTasks             = "Tasks"
	NSResolveRecipients = "ResolveRecipients"
	NSValidateCert      = "ValidateCert"
	NSContacts2         = "Contacts2"
	NSPing              = "Ping"
	NSProvision         = "Provision"
	NSSearch            = "Search"
	NSGAL               = "GAL"
	NSAirSyncBase       = "AirSyncBase"
	NSSettings          = "Settings"
	NSDocumentLibrary   = "DocumentLibrary"
	NSItemOperations    = "ItemOperations"
	NSComposeMail       = "ComposeMail"
	NSEmail2            = "Email2"
	NSNotes             = "Notes"
	NSRightsManagement  = "RightsManagement"
)

// MaxPage is the highest code page defined by the protocol.
const MaxPage = 24

var pages = []codepage.Page{
	{Index: 0, Space: NSAirSync, Tags: codepage.Seq(0x05,
		"Sync", "Responses", "Add", "Change", "Delete", "Fetch", "SyncKey",
		"ClientId", "ServerId", "Status", "Collection", "Class", "Version",
		"CollectionId", "GetChanges", "MoreAvailable", "WindowSize", "Commands",
		"Options", "FilterType", "Truncation", "RtfTruncation", "Conflict",
		"Collections", "ApplicationData", "DeletesAsMoves", "NotifyGUID",
		"Supported", "SoftDelete", "MIMESupport", "MIMETruncation", "Wait",
		"Limit", "Partial", "ConversationMode", "MaxItems", "HeartbeatInterval",
	)},
	{Index: 1, Space: NSContacts, Tags: codepage.Seq(0x05,
		"Anniversary", "AssistantName", "AssistantPhoneNumber", "Birthday",
		"Body", "BodySize", "BodyTruncated", "Business2PhoneNumber",
		"BusinessAddressCity", "BusinessAddressCountry",
		"BusinessAddressPostalCode", "BusinessAddressState",
		"BusinessAddressStreet", "BusinessFaxNumber", "BusinessPhoneNumber",
		"CarPhoneNumber", "Categories", "Category", "Children", "Child",
		"CompanyName", "Department", "Email1Address", "Email2Address",
		"Email3Address", "FileAs", "FirstName", "Home2PhoneNumber",
		"HomeAddressCity", "HomeAddressCountry", "HomeAddressPostalCode",
		"HomeAddressState", "HomeAddressStreet", "HomeFaxNumber",
		"HomePhoneNumber", "JobTitle", "LastName", "MiddleName",
		"MobilePhoneNumber", "OfficeLocation", "OtherAddressCity",
		"OtherAddressCountry", "OtherAddressPostalCode", "OtherAddressState",
		"OtherAddressStreet", "PagerNumber", "RadioPhoneNumber", "Spouse",
		"Suffix", "Title", "WebPage", "YomiCompanyName", "YomiFirstName",
		"YomiLastName", "CompressedRTF", "Picture", "Alias", "WeightedRank",
	)},
	{Index: 2, Space: NSEmail, Tags: codepage.Seq(0x05,
		"Attachment", "Attachments", "AttName", "AttSize", "Att0Id",
		"AttMethod", "AttRemoved", "Body", "BodySize", "BodyTruncated",
		"DateReceived", "DisplayName", "DisplayTo", "Importance",
		"MessageClass", "Subject", "Read", "To", "Cc", "From", "ReplyTo",
		"AllDayEvent", "Categories", "Category", "DtStamp", "EndTime",
		"InstanceType", "BusyStatus", "Location", "MeetingRequest",
		"Organizer", "RecurrenceId", "Reminder", "ResponseRequested",
		"Recurrences", "Recurrence", "Recurrence_Type", "Recurrence_Until",
		"Recurrence_Occurrences", "Recurrence_Interval",
		"Recurrence_DayOfWeek", "Recurrence_DayOfMonth",
		"Recurrence_WeekOfMonth", "Recurrence_MonthOfYear", "StartTime",
		"Sensitivity", "TimeZone", "GlobalObjId", "ThreadTopic", "MIMEData",
		"MIMETruncated", "MIMESize", "InternetCPID", "Flag", "FlagStatus",
		"ContentClass", "FlagType", "CompleteTime", "DisallowNewTimeProposal",
	)},
	{Index: 3, Space: NSAirNotify, Tags: codepage.Seq(0x05,
		"Notify", "Notification", "Version", "Lifetime", "DeviceInfo",
		"Enable", "Folder", "ServerId", "DeviceAddress", "ValidCarrierProfiles",
		"CarrierProfile", "Status", "Responses", "Devices", "Device", "Id",
		"Expiry", "NotifyGUID", "DeviceFriendlyName",
	)},
	{Index: 4, Space: NSCalendar, Tags: codepage.Seq(0x05,
		"TimeZone", "AllDayEvent", "Attendees", "Attendee", "Email", "Name",
		"Body", "BodyTruncated", "BusyStatus", "Categories", "Category",
		"CompressedRTF", "DtStamp", "EndTime", "Exception", "Exceptions",
		"Deleted", "ExceptionStartTime", "Location", "MeetingStatus",
		"OrganizerEmail", "OrganizerName", "Recurrence", "Type", "Until",
		"Occurrences", "Interval", "DayOfWeek", "DayOfMonth", "WeekOfMonth",
		"MonthOfYear", "Reminder", "Sensitivity", "Subject", "StartTime", "UID",
		"AttendeeStatus", "AttendeeType", "Attachment", "Attachments",
		"AttName", "AttSize", "AttOid", "AttMethod", "AttRemoved",
		"DisplayName", "DisallowNewTimeProposal", "ResponseRequested",
		"AppointmentReplyTime", "ResponseType", "CalendarType", "IsLeapMonth",
		"FirstDayOfWeek", "OnlineMeetingConfLink", "OnlineMeetingExternalLink",
		"ClientUid",
	)},
	{Index: 5, Space: NSMove, Tags: codepage.Seq(0x05,
		"MoveItems", "Move", "SrcMsgId", "SrcFldId", "DstFldId", "Response",
		"Status", "DstMsgId",
	)},
	{Index: 6, Space: NSItemEstimate, Tags: codepage.Seq(0x05,
		"GetItemEstimate", "Version", "Collections", "Collection", "Class",
		"CollectionId", "DateTime", "Estimate", "Response", "Status",
	)},
	{Index: 7, Space: NSFolderHierarchy, Tags: codepage.Seq(0x05,
		"Folders", "Folder", "DisplayName", "ServerId", "ParentId", "Type",
		"Response", "Status", "ContentClass", "Changes", "Add", "Delete",
		"Update", "SyncKey", "FolderCreate", "FolderDelete", "FolderUpdate",
		"FolderSync", "Count", "Version",
	)},
	{Index: 8, Space: NSMeetingResponse, Tags: codepage.Seq(0x05,
		"CalendarId", "CollectionId", "MeetingResponse", "RequestId",
		"Request", "Result", "Status", "UserResponse", "Version", "InstanceId",
	)},
	{Index: 9, Space: NSTasks, Tags: codepage.Seq(0x05,
		"Body", "BodySize", "BodyTruncated", "Categories", "Category",
		"Complete", "DateCompleted", "DueDate", "UtcDueDate", "Importance",
		"Recurrence", "Type", "Start", "Until", "Occurrences", "Interval",
		"DayOfMonth", "DayOfWeek", "WeekOfMonth", "MonthOfYear", "Regenerate",
		"DeadOccur", "ReminderSet", "ReminderTime", "Sensitivity", "StartDate",
		"UtcStartDate", "Subject", "CompressedRTF", "OrdinalDate",
		"SubOrdinalDate", "CalendarType", "IsLeapMonth", "FirstDayOfWeek",
	)},
	{Index: 10, Space: NSResolveRecipients, Tags: codepage.Seq(0x05,
		"ResolveRecipients", "Response", "Status", "Type", "Recipient",
		"DisplayName", "EmailAddress", "Certificates", "Certificate",
		"MiniCertificate", "Options", "To", "CertificateRetrieval",
		"RecipientCount", "MaxCertificates", "MaxAmbiguousRecipients",
		"CertificateCount", "Availability", "StartTime", "EndTime",
		"MergedFreeBusy", "Picture", "MaxSize", "Data", "MaxPictures",
	)},
	{Index: 11, Space: NSValidateCert, Tags: codepage.Seq(0x05,
		"ValidateCert", "Certificates", "Certificate", "CertificateChain",
		"CheckCRL", "Status",
	)},
	{Index: 12, Space: NSContacts2, Tags: codepage.Seq(0x05,
		"CustomerId", "GovernmentId", "IMAddress", "IMAddress2", "IMAddress3",
		"ManagerName", "CompanyMainPhone", "AccountName", "NickName", "MMS",
	)},
	{Index: 13, Space: NSPing, Tags: codepage.Seq(0x05,
		"Ping", "AutdState", "Status", "HeartbeatInterval", "Folders",
		"Folder", "Id", "Class", "MaxFolders",
	)},
	{Index: 14, Space: NSProvision, Tags: codepage.Seq(0x05,
		"Provision", "Policies", "Policy", "PolicyType", "PolicyKey", "Data",
		"Status", "RemoteWipe", "EASProvisionDoc", "DevicePasswordEnabled",
		"AlphanumericDevicePasswordRequired", "RequireStorageCardEncryption",
		"PasswordRecoveryEnabled", "DocumentBrowseEnabled",
		"AttachmentsEnabled", "MinDevicePasswordLength",
		"MaxInactivityTimeDeviceLock", "MaxDevicePasswordFailedAttempts",
		"MaxAttachmentSize", "AllowSimpleDevicePassword",
		"DevicePasswordExpiration", "DevicePasswordHistory",
		"AllowStorageCard", "AllowCamera", "RequireDeviceEncryption",
		"AllowUnsignedApplications", "AllowUnsignedInstallationPackages",
		"MinDevicePasswordComplexCharacters", "AllowWiFi",
		"AllowTextMessaging", "AllowPOPIMAPEmail", "AllowBluetooth",
		"AllowIrDA", "RequireManualSyncWhenRoaming", "AllowDesktopSync",
		"MaxCalendarAgeFilter", "AllowHTMLEmail", "MaxEmailAgeFilter",
		"MaxEmailBodyTruncationSize", "MaxEmailHTMLBodyTruncationSize",
		"RequireSignedSMIMEMessages", "RequireEncryptedSMIMEMessages",
		"RequireSignedSMIMEAlgorithm", "RequireEncryptionSMIMEAlgorithm",
		"AllowSMIMEEncryptionAlgorithmNegotiation", "AllowSMIMESoftCerts",
		"AllowBrowser", "AllowConsumerEmail", "AllowRemoteDesktop",
		"AllowInternetSharing", "UnapprovedInROMApplicationList",
		"ApplicationName", "ApprovedApplicationList", "Hash",
		"AccountOnlyRemoteWipe",
	)},
	{Index: 15, Space: NSSearch, Tags: codepage.With(codepage.Seq(0x05,
		"Search", "", "Store", "Name", "Query", "Options", "Range", "Status",
		"Response", "Result", "Properties", "Total", "EqualTo", "Value", "And",
		"Or", "FreeText", "", "DeepTraversal", "LongId", "RebuildResults",
		"LessThan", "GreaterThan", "", "", "UserName", "Password",
		"ConversationId", "Picture", "MaxSize", "MaxPictures",
	), map[string]codepage.Flags{
		"ConversationId": codepage.OpaqueBase64,
	})},
	{Index: 16, Space: NSGAL, Tags: codepage.Seq(0x05,
		"DisplayName", "Phone", "Office", "Title", "Company", "Alias",
		"FirstName", "LastName", "HomePhone", "MobilePhone", "EmailAddress",
		"Picture", "Status", "Data",
	)},
	{Index: 17, Space: NSAirSyncBase, Tags: codepage.Seq(0x05,
		"BodyPreference", "Type", "TruncationSize", "AllOrNone", "", "Body",
		"Data", "EstimatedDataSize", "Truncated", "Attachments", "Attachment",
		"DisplayName", "FileReference", "Method", "ContentId",
		"ContentLocation", "IsInline", "NativeBodyType", "ContentType",
		"Preview", "BodyPartPreference", "BodyPart", "Status", "Add", "Delete",
		"ClientId", "Content", "Location", "Annotation", "Street", "City",
		"State", "Country", "PostalCode", "Latitude", "Longitude", "Accuracy",
		"Altitude", "AltitudeAccuracy", "LocationUri", "InstanceId",
	)},
	{Index: 18, Space: NSSettings, Tags: codepage.Seq(0x05,
		"Settings", "Status", "Get", "Set", "Oof", "OofState", "StartTime",
		"EndTime", "OofMessage", "AppliesToInternal", "AppliesToExternalKnown",
		"AppliesToExternalUnknown", "Enabled", "ReplyMessage", "BodyType",
		"DevicePassword", "Password", "DeviceInformation", "Model", "IMEI",
		"FriendlyName", "OS", "OSLanguage", "PhoneNumber", "UserInformation",
		"EmailAddresses", "SmtpAddress", "UserAgent", "EnableOutboundSMS",
		"MobileOperator", "PrimarySmtpAddress", "Accounts", "Account",
		"AccountId", "AccountName", "UserDisplayName", "SendDisabled", "",
		"RightsManagementInformation",
	)},
	{Index: 19, Space: NSDocumentLibrary, Tags: codepage.Seq(0x05,
		"LinkId", "DisplayName", "IsFolder", "CreationDate",
		"LastModifiedDate", "IsHidden", "ContentLength", "ContentType",
	)},
	{Index: 20, Space: NSItemOperations, Tags: codepage.With(codepage.Seq(0x05,
		"ItemOperations", "Fetch", "Store", "Options", "Range", "Total",
		"Properties", "Data", "Status", "Response", "Version", "Schema", "Part",
		"EmptyFolderContents", "DeleteSubFolders", "UserName", "Password",
		"Move", "DstFldId", "ConversationId", "MoveAlways",
	), map[string]codepage.Flags{
		"Data":           codepage.PeelOff,
		"ConversationId": codepage.OpaqueBase64,
	})},
	{Index: 21, Space: NSComposeMail, Tags: codepage.With(codepage.Seq(0x05,
		"SendMail", "SmartForward", "SmartReply", "SaveInSentItems",
		"ReplaceMime", "", "Source", "FolderId", "ItemId", "LongId",
		"InstanceId", "Mime", "ClientId", "Status", "AccountId",
	), map[string]codepage.Flags{
		"Mime": codepage.Opaque,
	})},
	{Index: 22, Space: NSEmail2, Tags: codepage.With(codepage.Seq(0x05,
		"UmCallerID", "UmUserNotes", "UmAttDuration", "UmAttOrder",
		"ConversationId", "ConversationIndex", "LastVerbExecuted",
		"LastVerbExecutionTime", "ReceivedAsBcc", "Sender", "CalendarType",
		"IsLeapMonth", "AccountId", "FirstDayOfWeek", "MeetingMessageType", "",
		"IsDraft", "Bcc", "Send",
	), map[string]codepage.Flags{
		"ConversationId":    codepage.OpaqueBase64,
		"ConversationIndex": codepage.OpaqueBase64,
	})},
	{Index: 23, Space: NSNotes, Tags: codepage.Seq(0x05,
		"Subject", "MessageClass", "LastModifiedDate", "Categories", "Category",
	)},
	{Index: 24, Space: NSRightsManagement, Tags: codepage.Seq(0x05,
		"RightsManagementSupport", "RightsManagementTemplates",
		"RightsManagementTemplate", "RightsManagementLicense", "EditAllowed",
		"ReplyAllowed", "ReplyAllAllowed", "ForwardAllowed",
		"ModifyRecipientsAllowed", "ExtractAllowed", "PrintAllowed",
		"ExportAllowed", "ProgrammaticAccessAllowed", "Owner",
		"ContentExpiryDate", "TemplateID", "TemplateName",
		"TemplateDescription", "ContentOwner",
		"RemoveRightsManagementDistribution",
	)},
}

// Pages is the code page table for ActiveSync documents as defined in
// [MS-ASWBXML] §2.1.2.1.
var Pages = codepage.MustTable(pages...)
