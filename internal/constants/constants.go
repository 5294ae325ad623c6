package constants

// 回收单状态常量
const (
	PickupStatusPending    = "pending"
	PickupStatusScheduled  = "scheduled"
	PickupStatusInProgress = "in_progress"
	PickupStatusCompleted  = "completed"
	PickupStatusCancelled  = "cancelled"
)

// 回收单优先级常量
const (
	PickupPriorityLow    = "low"
	PickupPriorityMedium = "medium"
	PickupPriorityHigh   = "high"
	PickupPriorityUrgent = "urgent"
)

// 用户角色常量
const (
	RoleUser     = "user"
	RoleRecycler = "recycler"
	RoleAdmin    = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 电子废弃物设备类型常量
const (
	DeviceTypeSmartphone     = "smartphone"
	DeviceTypeLaptop         = "laptop"
	DeviceTypeDesktop        = "desktop"
	DeviceTypeTablet         = "tablet"
	DeviceTypeTelevision     = "television"
	DeviceTypeRefrigerator   = "refrigerator"
	DeviceTypeWashingMachine = "washing_machine"
	DeviceTypeAirConditioner = "air_conditioner"
	DeviceTypeBattery        = "battery"
	DeviceTypeAccessory      = "accessory"
	DeviceTypeOther          = "other"
)

// DeviceTypes 支持的设备类型顺序
var DeviceTypes = []string{
	DeviceTypeSmartphone,
	DeviceTypeLaptop,
	DeviceTypeDesktop,
	DeviceTypeTablet,
	DeviceTypeTelevision,
	DeviceTypeRefrigerator,
	DeviceTypeWashingMachine,
	DeviceTypeAirConditioner,
	DeviceTypeBattery,
	DeviceTypeAccessory,
	DeviceTypeOther,
}

// 设备成色常量
const (
	ItemConditionWorking          = "working"
	ItemConditionPartiallyWorking = "partially_working"
	ItemConditionNotWorking       = "not_working"
	ItemConditionScrap            = "scrap"
)

// 奖励类型常量
const (
	RewardTypePoints   = "points"
	RewardTypeCoupon   = "coupon"
	RewardTypeCashback = "cashback"
	RewardTypeVoucher  = "voucher"
	RewardTypeDiscount = "discount"
)

// 奖励状态常量
const (
	RewardStatusPending   = "pending"
	RewardStatusActive    = "active"
	RewardStatusRedeemed  = "redeemed"
	RewardStatusExpired   = "expired"
	RewardStatusCancelled = "cancelled"
)

// 奖励计算来源常量
const (
	RewardSourcePredictor = "predictor"
	RewardSourceFallback  = "fallback"
)

// 奖励默认配置常量
const (
	RewardFallbackRatePerKG  = 10
	RewardExpiryDays         = 180
	RewardCurrencyDefault    = "INR"
	RewardRedemptionTypeFull = "full"
)

// 追踪号与兑换码前缀常量
const (
	TrackingNumberPrefix = "RL"
	RedemptionCodePrefix = "RW"
)

// 队列常量
const (
	QueueDefault            = "default"
	QueueCritical           = "critical"
	TaskPickupStatusNotify  = "pickup:status_notify"
	TaskRewardExpire        = "reward:timeout_expire"
	TaskPickupReminderNudge = "pickup:schedule_reminder"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "rl"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleHiIN = "hi-IN"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleHiIN}
