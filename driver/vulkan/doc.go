// Package vulkan implements the driver interface on the Vulkan API via
// github.com/goki/vulkan.
//
// The package does not create instances or devices; callers bring their own
// vk.Device (from their swapchain/instance setup) and register it with
// Wrap. Every handle the driver hands out is an opaque identifier mapped to
// the underlying Vulkan object in an internal table, so handles stay valid
// to pass around even though Vulkan's own dispatchable handles are pointers.
//
// Importing this package registers the driver under driver.NameVulkan.
package vulkan
